package script

import (
	"errors"
	"fmt"
)

// HashSize is the length of a HASH160 public key hash.
const HashSize = 20

const (
	p2pkhScriptLen  = 25
	p2wpkhScriptLen = 22
)

// ErrHashSize is returned when a key hash is not HashSize bytes.
var ErrHashSize = errors.New("key hash must be 20 bytes")

// PayToPubKeyHash builds OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG.
func PayToPubKeyHash(hash []byte) ([]byte, error) {
	if len(hash) != HashSize {
		return nil, fmt.Errorf("%w, got %d", ErrHashSize, len(hash))
	}
	s := make([]byte, 0, p2pkhScriptLen)
	s = append(s, OP_DUP, OP_HASH160, OP_DATA_20)
	s = append(s, hash...)
	s = append(s, OP_EQUALVERIFY, OP_CHECKSIG)
	return s, nil
}

// PayToWitnessPubKeyHash builds OP_0 <hash>.
func PayToWitnessPubKeyHash(hash []byte) ([]byte, error) {
	if len(hash) != HashSize {
		return nil, fmt.Errorf("%w, got %d", ErrHashSize, len(hash))
	}
	s := make([]byte, 0, p2wpkhScriptLen)
	s = append(s, OP_0, OP_DATA_20)
	s = append(s, hash...)
	return s, nil
}
