// Package types defines the byte-level primitives shared by scripts,
// outpoints and UTXOs: hashes, hex and endian helpers, and amounts.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashSize is the length of a hash in bytes.
const HashSize = 32

// Hash is a 256-bit hash stored in wire (little-endian) order.
type Hash [HashSize]byte

// IsZero returns true if the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the hash hex-encoded in display (big-endian) order,
// the way txids are shown by block explorers and RPC.
func (h Hash) String() string {
	return hex.EncodeToString(ReverseBytes(h[:]))
}

// WireHex returns the hash hex-encoded in wire order.
func (h Hash) WireHex() string {
	return hex.EncodeToString(h[:])
}

// Bytes returns a copy of the hash in wire order.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// MarshalJSON encodes the hash as a display-order hex string.
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON decodes a display-order hex string into a hash.
func (h *Hash) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*h = Hash{}
		return nil
	}
	parsed, err := HashFromDisplay(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// HashFromDisplay parses a 64-character display-order hex string
// (as printed by explorers) into a wire-order Hash.
func HashFromDisplay(s string) (Hash, error) {
	b, err := DecodeHex(s)
	if err != nil {
		return Hash{}, err
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	return HashFromBytes(ReverseBytes(b))
}

// HashFromBytes copies a wire-order 32-byte slice into a Hash.
func HashFromBytes(b []byte) (Hash, error) {
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("hash must be %d bytes, got %d", HashSize, len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}
