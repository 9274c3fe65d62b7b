package script

// Fixed push-data layout: script[1] holds the payload length and the
// payload starts right after it.
const (
	pushLenOffset  = 1
	pushDataOffset = 2
)

// ExtractPushData returns the payload of a script laid out as
// <op> <len> <payload...>. The result is a view into script, capped so
// that appending to it cannot overwrite the source.
//
// Scripts shorter than two bytes, or whose declared length runs past the
// end, yield an empty result; a truncated payload is never returned.
//
// Only P2WPKH scripts have this layout. Callers must classify first; on any
// other script the result is meaningless, though it never panics.
func ExtractPushData(script []byte) []byte {
	if len(script) < pushDataOffset {
		return nil
	}
	end := pushDataOffset + int(script[pushLenOffset])
	if len(script) < end {
		return nil
	}
	return script[pushDataOffset:end:end]
}

// PubKeyHash returns the 20-byte key hash committed to by a standard
// P2PKH or P2WPKH script, as a view into script.
func PubKeyHash(script []byte) ([]byte, bool) {
	switch Classify(script) {
	case TypeP2PKH:
		// OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
		if len(script) == p2pkhScriptLen &&
			script[23] == OP_EQUALVERIFY &&
			script[24] == OP_CHECKSIG {
			return script[3:23:23], true
		}
	case TypeP2WPKH:
		if len(script) == p2wpkhScriptLen {
			return ExtractPushData(script), true
		}
	}
	return nil, false
}
