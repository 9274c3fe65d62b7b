package types

import "encoding/binary"

// ReverseBytes returns a new slice holding b in reverse order.
// It converts between wire (little-endian) and display (big-endian)
// orientation of txids and other fixed-width fields.
func ReverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// ToBigEndian converts a wire-order byte slice to display order.
func ToBigEndian(b []byte) []byte {
	return ReverseBytes(b)
}

// SwapU32Endian returns the little-endian encoding of v, so that
// out[i] == byte(v >> (8*i)).
//
// The name is historical: nothing is swapped relative to an assumed
// big-endian input, v is simply serialized the way it appears on the wire.
func SwapU32Endian(v uint32) [4]byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], v)
	return out
}

// Uint32FromLE decodes a little-endian 4-byte field. It is the inverse of
// SwapU32Endian.
func Uint32FromLE(b [4]byte) uint32 {
	return binary.LittleEndian.Uint32(b[:])
}
