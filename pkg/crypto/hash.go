// Package crypto provides the hashing and key helpers used around scripts:
// HASH160 for key hashes, double SHA-256 for txids, BLAKE3 for local
// commitments.
package crypto

import (
	"crypto/sha256"

	"github.com/Klingon-tech/klingscript/pkg/types"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // HASH160 is defined over RIPEMD-160.
)

// Hash160 computes RIPEMD160(SHA256(data)), the 20-byte hash committed to
// by P2PKH and P2WPKH scripts.
func Hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sum[:])
	return h.Sum(nil)
}

// DoubleSHA256 computes SHA256(SHA256(data)) in wire order. Transaction
// and block identifiers are defined this way.
func DoubleSHA256(data []byte) types.Hash {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Blake3 computes a BLAKE3-256 hash of data.
func Blake3(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// HashConcat hashes the concatenation of two hashes with BLAKE3.
// Used for building merkle trees.
func HashConcat(a, b types.Hash) types.Hash {
	var buf [2 * types.HashSize]byte
	copy(buf[:types.HashSize], a[:])
	copy(buf[types.HashSize:], b[:])
	return Blake3(buf[:])
}
