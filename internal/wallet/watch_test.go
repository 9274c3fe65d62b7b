package wallet

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/Klingon-tech/klingscript/internal/storage"
	"github.com/Klingon-tech/klingscript/internal/utxo"
	"github.com/Klingon-tech/klingscript/pkg/crypto"
	"github.com/Klingon-tech/klingscript/pkg/script"
)

func record(t *testing.T, tag string, value, height uint64, scr []byte) *utxo.Record {
	t.Helper()
	return &utxo.Record{
		UTXO: utxo.UTXO{
			TxID:  crypto.DoubleSHA256([]byte(tag)).Bytes(),
			Value: value,
		},
		Script: scr,
		Height: height,
	}
}

func TestWatcher_AddHash(t *testing.T) {
	w := NewWatcher()
	if err := w.AddHash(make([]byte, 19)); !errors.Is(err, script.ErrHashSize) {
		t.Errorf("AddHash(19 bytes) error = %v, want ErrHashSize", err)
	}
	if err := w.AddHash(make([]byte, 20)); err != nil {
		t.Fatalf("AddHash() error: %v", err)
	}
	if w.Len() != 1 {
		t.Errorf("Len() = %d, want 1", w.Len())
	}
}

func TestWatcher_Owns(t *testing.T) {
	w := NewWatcher()
	mine := bytes.Repeat([]byte{0x01}, script.HashSize)
	theirs := bytes.Repeat([]byte{0x02}, script.HashSize)
	w.AddHash(mine)

	p2pkhMine, _ := script.PayToPubKeyHash(mine)
	p2wpkhMine, _ := script.PayToWitnessPubKeyHash(mine)
	p2pkhTheirs, _ := script.PayToPubKeyHash(theirs)

	tests := []struct {
		name string
		scr  []byte
		want bool
	}{
		{"p2pkh mine", p2pkhMine, true},
		{"p2wpkh mine", p2wpkhMine, true},
		{"p2pkh theirs", p2pkhTheirs, false},
		{"prefix only", p2pkhMine[:3], false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Owns(tt.scr); got != tt.want {
				t.Errorf("Owns(%x) = %v, want %v", tt.scr, got, tt.want)
			}
		})
	}
}

func TestWatcher_AddAccount(t *testing.T) {
	master := testMaster(t)
	w := NewWatcher()
	if err := w.AddAccount(master, PurposeBIP84, CoinTypeMainnet, 0, 5); err != nil {
		t.Fatalf("AddAccount() error: %v", err)
	}
	if w.Len() != 10 {
		t.Errorf("Len() = %d, want 10 (5 external + 5 change)", w.Len())
	}

	k, _ := master.DeriveAddress(PurposeBIP84, CoinTypeMainnet, 0, ChangeInternal, 4)
	s, _ := k.Script(PurposeBIP84)
	if !w.Owns(s) {
		t.Error("watcher should own change key 4")
	}
	k, _ = master.DeriveAddress(PurposeBIP84, CoinTypeMainnet, 0, ChangeExternal, 5)
	s, _ = k.Script(PurposeBIP84)
	if w.Owns(s) {
		t.Error("watcher should not own a key beyond the lookahead")
	}

	if err := w.AddAccount(master.Neuter(), PurposeBIP84, CoinTypeMainnet, 0, 1); err == nil {
		t.Error("AddAccount with a neutered master should fail")
	}
}

func TestWatcher_Scan(t *testing.T) {
	master := testMaster(t)
	w := NewWatcher()
	w.AddAccount(master, PurposeBIP84, CoinTypeMainnet, 0, 2)

	k0, _ := master.DeriveAddress(PurposeBIP84, CoinTypeMainnet, 0, ChangeExternal, 0)
	k1, _ := master.DeriveAddress(PurposeBIP84, CoinTypeMainnet, 0, ChangeInternal, 1)
	witness0, _ := k0.Script(PurposeBIP84)
	legacy1, _ := k1.Script(PurposeBIP44) // same key hash, P2PKH form
	foreign, _ := script.PayToWitnessPubKeyHash(bytes.Repeat([]byte{0xee}, script.HashSize))

	store := utxo.NewStore(storage.NewMemory())
	store.Put(record(t, "a", 1000, 10, witness0))
	store.Put(record(t, "b", 500, 0, witness0))
	store.Put(record(t, "c", 250, 12, legacy1))
	store.Put(record(t, "d", 9999, 5, foreign))
	store.Put(record(t, "e", 7777, 5, []byte{0x6a}))

	if w.Balance() != 0 {
		t.Errorf("Balance() before Scan = %d, want 0", w.Balance())
	}

	bal, owned, err := w.Scan(store)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if bal.Confirmed != 1250 || bal.Unconfirmed != 500 {
		t.Errorf("Scan() balance = %+v, want {1250 500}", bal)
	}
	if len(owned) != 3 {
		t.Errorf("owned = %d records, want 3", len(owned))
	}

	var wallet Wallet = w
	if wallet.Balance() != 1250 {
		t.Errorf("Balance() = %d, want 1250", wallet.Balance())
	}
}

func TestWatcher_ScanOverflow(t *testing.T) {
	hash := bytes.Repeat([]byte{0x42}, script.HashSize)
	owned, _ := script.PayToWitnessPubKeyHash(hash)
	w := NewWatcher()
	w.AddHash(hash)

	tests := []struct {
		name   string
		height uint64
	}{
		{"confirmed", 7},
		{"unconfirmed", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := utxo.NewStore(storage.NewMemory())
			store.Put(record(t, "ok", 10, 3, owned))
			store.Put(record(t, "x", math.MaxUint64/2+1, tt.height, owned))
			store.Put(record(t, "y", math.MaxUint64/2+1, tt.height, owned))

			if _, _, err := w.Scan(store); !errors.Is(err, ErrBalanceOverflow) {
				t.Fatalf("Scan() error = %v, want ErrBalanceOverflow", err)
			}
		})
	}

	// A failed scan leaves the previous balance in place.
	store := utxo.NewStore(storage.NewMemory())
	store.Put(record(t, "ok", 10, 3, owned))
	if _, _, err := w.Scan(store); err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	store.Put(record(t, "x", math.MaxUint64, 3, owned))
	if _, _, err := w.Scan(store); err == nil {
		t.Fatal("Scan() should fail on overflow")
	}
	if w.Balance() != 10 {
		t.Errorf("Balance() = %d, want 10 from the last good scan", w.Balance())
	}
}

func TestWatcher_Concurrent(t *testing.T) {
	w := NewWatcher()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := bytes.Repeat([]byte{byte(i)}, script.HashSize)
			w.AddHash(h)
			s, _ := script.PayToWitnessPubKeyHash(h)
			w.Owns(s)
		}(i)
	}
	wg.Wait()
	if w.Len() != 8 {
		t.Errorf("Len() = %d, want 8", w.Len())
	}
}
