// Package script classifies output scripts, extracts push-data payloads and
// decodes single-byte opcodes. Every function here is pure and safe for
// concurrent use; none of them copy the caller's buffer.
package script

import (
	"bytes"
	"strings"
)

// Type identifies the spend pattern of an output script.
type Type uint8

const (
	TypeUnknown Type = 0x00 // Any script that matches no known pattern
	TypeP2PKH   Type = 0x01 // Pay to public key hash: OP_DUP OP_HASH160 <20>
	TypeP2WPKH  Type = 0x02 // Pay to witness public key hash: OP_0 <20>
)

// Script prefixes recognized by Classify.
var (
	prefixP2PKH  = []byte{OP_DUP, OP_HASH160, OP_DATA_20}
	prefixP2WPKH = []byte{OP_0, OP_DATA_20}
)

// String returns a human-readable name for the script type.
func (t Type) String() string {
	switch t {
	case TypeP2PKH:
		return "P2PKH"
	case TypeP2WPKH:
		return "P2WPKH"
	default:
		return "Unknown"
	}
}

// ParseType maps a name produced by String back to a Type. Matching is
// case-insensitive; unknown names yield TypeUnknown and false.
func ParseType(s string) (Type, bool) {
	switch {
	case strings.EqualFold(s, "p2pkh"):
		return TypeP2PKH, true
	case strings.EqualFold(s, "p2wpkh"):
		return TypeP2WPKH, true
	case strings.EqualFold(s, "unknown"):
		return TypeUnknown, true
	}
	return TypeUnknown, false
}

// Classify assigns script to a spend type by its leading bytes. It never
// fails: short, empty and unrecognized scripts are TypeUnknown.
func Classify(script []byte) Type {
	switch {
	case bytes.HasPrefix(script, prefixP2PKH):
		return TypeP2PKH
	case bytes.HasPrefix(script, prefixP2WPKH):
		return TypeP2WPKH
	default:
		return TypeUnknown
	}
}
