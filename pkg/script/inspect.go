package script

// Report is the result of running a script through classification,
// push-data extraction and opcode decoding.
type Report struct {
	Type       Type
	PushData   []byte   // ExtractPushData result; empty for non-P2WPKH layouts
	PubKeyHash []byte   // nil unless the script is a standard template
	Ops        []Opcode // decoded bytes outside the key hash
	OpErr      error    // first decoder failure, as returned by DecodeOpcode
}

// Recognized reports whether the script matched a known pattern.
func (r Report) Recognized() bool {
	return r.Type != TypeUnknown
}

// Inspect classifies script and, if it is recognized, extracts its push
// data and decodes the opcode bytes around the key hash. Decoding stops at
// the first failure, which is kept in OpErr; for P2WPKH that is always the
// leading OP_0.
func Inspect(script []byte) Report {
	r := Report{Type: Classify(script)}
	if !r.Recognized() {
		return r
	}
	r.PushData = ExtractPushData(script)

	var ops []byte
	if hash, ok := PubKeyHash(script); ok {
		r.PubKeyHash = hash
		switch r.Type {
		case TypeP2PKH:
			ops = append(append(ops, script[:2]...), script[23:]...)
		case TypeP2WPKH:
			ops = append(ops, script[0])
		}
	} else {
		// Non-standard tail after a known prefix: decode the opcode
		// bytes of the prefix only.
		ops = append(ops, script[0])
		if r.Type == TypeP2PKH {
			ops = append(ops, script[1])
		}
	}
	r.Ops, r.OpErr = DecodeOpcodes(ops)
	return r
}
