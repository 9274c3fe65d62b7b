package utxo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/Klingon-tech/klingscript/internal/log"
	"github.com/Klingon-tech/klingscript/pkg/crypto"
	"github.com/Klingon-tech/klingscript/pkg/types"
)

// Commitment computes a BLAKE3 merkle root over all records in the store.
// Each record is hashed deterministically, the hashes are sorted, and a
// merkle tree is built from them. Returns a zero hash for an empty set.
func Commitment(store *Store) (types.Hash, error) {
	defer log.Benchmark("utxo commitment")()

	var hashes []types.Hash

	err := store.ForEach(func(r *Record) error {
		hashes = append(hashes, hashRecord(r))
		return nil
	})
	if err != nil {
		return types.Hash{}, fmt.Errorf("utxo commitment: %w", err)
	}

	sort.Slice(hashes, func(i, j int) bool {
		return bytes.Compare(hashes[i][:], hashes[j][:]) < 0
	})
	return merkleRoot(hashes), nil
}

// hashRecord serializes a record the way its fields appear on the wire:
// txid(32) | vout(4 LE) | value(8 LE) | script_len(4 LE) | script.
func hashRecord(r *Record) types.Hash {
	vout := types.SwapU32Endian(r.Vout)
	scriptLen := types.SwapU32Endian(uint32(len(r.Script)))

	buf := make([]byte, 0, len(r.TxID)+4+8+4+len(r.Script))
	buf = append(buf, r.TxID...)
	buf = append(buf, vout[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, r.Value)
	buf = append(buf, scriptLen[:]...)
	buf = append(buf, r.Script...)
	return crypto.Blake3(buf)
}

// merkleRoot pairs hashes level by level, duplicating the last element of
// odd levels. Zero hashes yield the zero hash; one hash is its own root.
func merkleRoot(hashes []types.Hash) types.Hash {
	if len(hashes) == 0 {
		return types.Hash{}
	}
	level := make([]types.Hash, len(hashes))
	copy(level, hashes)

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		next := make([]types.Hash, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = crypto.HashConcat(level[i], level[i+1])
		}
		level = next
	}
	return level[0]
}
