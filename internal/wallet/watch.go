package wallet

import (
	"fmt"
	"math"
	"sync"

	"github.com/Klingon-tech/klingscript/internal/log"
	"github.com/Klingon-tech/klingscript/internal/utxo"
	"github.com/Klingon-tech/klingscript/pkg/script"
)

// Watcher tracks a set of owned public key hashes and recognizes outputs
// paying to them. It is safe for concurrent use.
type Watcher struct {
	mu     sync.RWMutex
	hashes map[string]struct{}
	last   Balance
}

// NewWatcher creates an empty watcher.
func NewWatcher() *Watcher {
	return &Watcher{hashes: make(map[string]struct{})}
}

// AddHash registers a 20-byte public key hash.
func (w *Watcher) AddHash(hash []byte) error {
	if len(hash) != script.HashSize {
		return fmt.Errorf("%w, got %d", script.ErrHashSize, len(hash))
	}
	w.mu.Lock()
	w.hashes[string(hash)] = struct{}{}
	w.mu.Unlock()
	return nil
}

// AddKey registers the public key hash of an HD key.
func (w *Watcher) AddKey(k *HDKey) {
	// PubKeyHash is always HashSize bytes.
	_ = w.AddHash(k.PubKeyHash())
}

// AddAccount derives lookahead keys on both the external and change chains
// of an account and registers them. The path has hardened steps, so master
// must be private.
func (w *Watcher) AddAccount(master *HDKey, purpose, coinType, account, lookahead uint32) error {
	for _, change := range []uint32{ChangeExternal, ChangeInternal} {
		for i := uint32(0); i < lookahead; i++ {
			k, err := master.DeriveAddress(purpose, coinType, account, change, i)
			if err != nil {
				return fmt.Errorf("derive %d/%d: %w", change, i, err)
			}
			w.AddKey(k)
		}
	}
	log.Wallet.Debug().
		Uint32("account", account).
		Uint32("lookahead", lookahead).
		Int("keys", w.Len()).
		Msg("account keys registered")
	return nil
}

// Len returns the number of watched hashes.
func (w *Watcher) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.hashes)
}

// Owns reports whether scr is a standard P2PKH or P2WPKH script paying to
// a watched hash.
func (w *Watcher) Owns(scr []byte) bool {
	hash, ok := script.PubKeyHash(scr)
	if !ok {
		return false
	}
	w.mu.RLock()
	_, ok = w.hashes[string(hash)]
	w.mu.RUnlock()
	return ok
}

// Scan walks the UTXO store and returns the balance of owned records
// along with the records themselves. The result is remembered for Balance.
// If either the confirmed or the unconfirmed sum would overflow, Scan fails
// with ErrBalanceOverflow and the remembered balance is left unchanged.
func (w *Watcher) Scan(store *utxo.Store) (Balance, []*utxo.Record, error) {
	defer log.Benchmark("wallet scan")()

	var (
		bal   Balance
		owned []*utxo.Record
	)
	err := store.ForEach(func(r *utxo.Record) error {
		if !w.Owns(r.Script) {
			return nil
		}
		sum := &bal.Unconfirmed
		if r.Confirmed() {
			sum = &bal.Confirmed
		}
		if *sum > math.MaxUint64-r.Value {
			return fmt.Errorf("%w at %s", ErrBalanceOverflow, r.Outpoint())
		}
		*sum += r.Value
		owned = append(owned, r)
		return nil
	})
	if err != nil {
		return Balance{}, nil, fmt.Errorf("wallet scan: %w", err)
	}

	w.mu.Lock()
	w.last = bal
	w.mu.Unlock()

	log.Wallet.Info().
		Int("outputs", len(owned)).
		Uint64("confirmed", bal.Confirmed).
		Uint64("unconfirmed", bal.Unconfirmed).
		Msg("wallet scan complete")
	return bal, owned, nil
}

// Balance returns the confirmed balance from the most recent Scan.
func (w *Watcher) Balance() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.last.Confirmed
}
