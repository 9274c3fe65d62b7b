package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingscript/pkg/crypto"
	"github.com/Klingon-tech/klingscript/pkg/script"
	"github.com/tyler-smith/go-bip32"
)

// Derivation path constants.
// Full path: m/purpose'/coin_type'/account'/change/index
const (
	// HardenedOffset is added to an index for hardened derivation.
	HardenedOffset = bip32.FirstHardenedChild

	// PurposeBIP44 derives keys for P2PKH outputs.
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// PurposeBIP84 derives keys for P2WPKH outputs.
	PurposeBIP84 = bip32.FirstHardenedChild + 84

	// CoinTypeMainnet and CoinTypeTestnet are the SLIP-44 coin types.
	CoinTypeMainnet = bip32.FirstHardenedChild + 0
	CoinTypeTestnet = bip32.FirstHardenedChild + 1

	// ChangeExternal is for receiving addresses.
	ChangeExternal = 0

	// ChangeInternal is for change addresses.
	ChangeInternal = 1
)

// CoinType returns the hardened coin type for the network.
func CoinType(testnet bool) uint32 {
	if testnet {
		return CoinTypeTestnet
	}
	return CoinTypeMainnet
}

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(indices ...uint32) (*HDKey, error) {
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// DeriveAddress derives the key at m/purpose/coinType/account'/change/index.
// purpose and coinType must already be hardened.
func (k *HDKey) DeriveAddress(purpose, coinType, account, change, index uint32) (*HDKey, error) {
	return k.DerivePath(
		purpose,
		coinType,
		HardenedOffset+account,
		change,
		index,
	)
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	return k.key.PublicKey().Key
}

// PubKeyHash returns HASH160 of the compressed public key.
func (k *HDKey) PubKeyHash() []byte {
	return crypto.Hash160(k.PublicKeyBytes())
}

// Script returns the output script this key is paid to under the given
// purpose: P2WPKH for BIP-84, P2PKH otherwise.
func (k *HDKey) Script(purpose uint32) ([]byte, error) {
	if purpose == PurposeBIP84 {
		return script.PayToWitnessPubKeyHash(k.PubKeyHash())
	}
	return script.PayToPubKeyHash(k.PubKeyHash())
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// Neuter returns a public-key-only copy (for watch-only wallets).
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}
