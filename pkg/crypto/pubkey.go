package crypto

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// CompressedPubKeySize is the length of a compressed secp256k1 public key.
const CompressedPubKeySize = 33

// ParsePubKey validates a compressed (33-byte) or uncompressed (65-byte)
// secp256k1 public key and returns its compressed serialization.
func ParsePubKey(b []byte) ([]byte, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("parse pubkey: %w", err)
	}
	return pub.SerializeCompressed(), nil
}

// PubKeyHash returns HASH160 of the compressed form of pub.
func PubKeyHash(pub []byte) ([]byte, error) {
	compressed, err := ParsePubKey(pub)
	if err != nil {
		return nil, err
	}
	return Hash160(compressed), nil
}

// PubKeyFromPrivate derives the compressed public key for a 32-byte secret.
func PubKeyFromPrivate(priv []byte) ([]byte, error) {
	if len(priv) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(priv))
	}
	key := secp256k1.PrivKeyFromBytes(priv)
	defer key.Zero()
	return key.PubKey().SerializeCompressed(), nil
}
