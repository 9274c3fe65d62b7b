package script

import (
	"errors"
	"fmt"
)

// Opcode byte values referenced by this package.
const (
	OP_0           = 0x00
	OP_DATA_20     = 0x14
	OP_DUP         = 0x76
	OP_EQUALVERIFY = 0x88
	OP_HASH160     = 0xa9
	OP_CHECKSIG    = 0xac
)

// ErrInvalidOpcode is matched by every OpcodeError.
var ErrInvalidOpcode = errors.New("invalid opcode")

// OpcodeError reports the reserved byte rejected by DecodeOpcode.
type OpcodeError struct {
	Byte byte
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("invalid opcode: 0x%02x", e.Byte)
}

// Unwrap lets errors.Is match ErrInvalidOpcode.
func (e *OpcodeError) Unwrap() error {
	return ErrInvalidOpcode
}

// OpKind is the decoded meaning of an opcode byte.
type OpKind uint8

const (
	// OpInvalid is the fallback for every byte without a dedicated kind
	// (other than 0x00, which DecodeOpcode rejects).
	OpInvalid OpKind = iota
	OpChecksig
	OpDup
)

// String returns the kind name.
func (k OpKind) String() string {
	switch k {
	case OpChecksig:
		return "OP_CHECKSIG"
	case OpDup:
		return "OP_DUP"
	default:
		return "OP_INVALID"
	}
}

// Opcode is a decoded script byte. Byte keeps the source value so the
// fallback kind can still be round-tripped.
type Opcode struct {
	Kind OpKind
	Byte byte
}

// String returns the kind name, with the raw byte for the fallback kind.
func (o Opcode) String() string {
	if o.Kind == OpInvalid {
		return fmt.Sprintf("OP_INVALID(0x%02x)", o.Byte)
	}
	return o.Kind.String()
}

// DecodeOpcode maps a single byte to an Opcode.
//
// Only 0x00 fails, with an *OpcodeError. Every other byte without a
// dedicated kind decodes successfully as OpInvalid.
func DecodeOpcode(b byte) (Opcode, error) {
	switch b {
	case OP_CHECKSIG:
		return Opcode{Kind: OpChecksig, Byte: b}, nil
	case OP_DUP:
		return Opcode{Kind: OpDup, Byte: b}, nil
	case OP_0:
		return Opcode{}, &OpcodeError{Byte: b}
	default:
		return Opcode{Kind: OpInvalid, Byte: b}, nil
	}
}

// DecodeOpcodes decodes each byte of b in order, stopping at the first
// failure. The returned error wraps the *OpcodeError with its offset.
func DecodeOpcodes(b []byte) ([]Opcode, error) {
	ops := make([]Opcode, 0, len(b))
	for i, v := range b {
		op, err := DecodeOpcode(v)
		if err != nil {
			return ops, fmt.Errorf("offset %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}
