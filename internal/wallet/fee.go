package wallet

import (
	"math"
	"math/bits"
)

// Serialized sizes in virtual bytes for single-key spends.
const (
	txOverheadVBytes     = 11 // version + counts + locktime (+ segwit marker/flag, rounded up)
	p2pkhInputVBytes     = 148
	p2wpkhInputVBytes    = 68
	p2pkhOutputVBytes    = 34
	p2wpkhOutputVBytes   = 31
	legacyOverheadVBytes = 10
)

// EstimateFee returns the fee for a transaction spending numInputs
// single-key outputs into numOutputs outputs at feeRate sat/vbyte.
// witness selects P2WPKH sizes; otherwise P2PKH sizes are used.
// Negative counts count as zero, and a result past the uint64 max
// saturates at math.MaxUint64.
//
//	overhead + perInput*inputs + perOutput*outputs
func EstimateFee(numInputs, numOutputs int, witness bool, feeRate uint64) uint64 {
	overhead, perInput, perOutput := uint64(legacyOverheadVBytes), uint64(p2pkhInputVBytes), uint64(p2pkhOutputVBytes)
	if witness {
		overhead, perInput, perOutput = txOverheadVBytes, p2wpkhInputVBytes, p2wpkhOutputVBytes
	}
	size := addSat(overhead, addSat(
		mulSat(perInput, nonNegative(numInputs)),
		mulSat(perOutput, nonNegative(numOutputs)),
	))
	return mulSat(size, feeRate)
}

func nonNegative(n int) uint64 {
	if n < 0 {
		return 0
	}
	return uint64(n)
}

func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}
