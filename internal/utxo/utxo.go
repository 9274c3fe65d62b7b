// Package utxo keeps a classified set of unspent transaction outputs.
package utxo

import (
	"encoding/hex"
	"encoding/json"

	"github.com/Klingon-tech/klingscript/pkg/script"
	"github.com/Klingon-tech/klingscript/pkg/types"
)

// UTXO identifies a spendable output and its value.
type UTXO struct {
	TxID  []byte // raw transaction id, wire order
	Vout  uint32
	Value uint64 // satoshis
}

// Clone returns a copy of u that shares no memory with it.
func (u UTXO) Clone() UTXO {
	c := u
	if u.TxID != nil {
		c.TxID = make([]byte, len(u.TxID))
		copy(c.TxID, u.TxID)
	}
	return c
}

// Outpoint returns the display-order outpoint for u.
func (u UTXO) Outpoint() types.Outpoint {
	return types.Outpoint{
		TxID:  types.BytesToHex(types.ReverseBytes(u.TxID)),
		Index: u.Vout,
	}
}

// Record is a UTXO as held by the Store: the output plus its locking
// script, the script's classification and the confirmation height
// (0 for unconfirmed).
type Record struct {
	UTXO
	Script []byte
	Type   script.Type
	Height uint64
}

// Confirmed reports whether the output is in a block.
func (r *Record) Confirmed() bool {
	return r.Height > 0
}

// recordJSON is the stored representation of a Record with hex-encoded
// byte fields.
type recordJSON struct {
	TxID   string      `json:"txid"`
	Vout   uint32      `json:"vout"`
	Value  uint64      `json:"value"`
	Script string      `json:"script"`
	Type   script.Type `json:"type"`
	Height uint64      `json:"height,omitempty"`
}

// MarshalJSON encodes the record with hex-encoded txid (wire order) and script.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		TxID:   hex.EncodeToString(r.TxID),
		Vout:   r.Vout,
		Value:  r.Value,
		Script: hex.EncodeToString(r.Script),
		Type:   r.Type,
		Height: r.Height,
	})
}

// UnmarshalJSON decodes a record written by MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var j recordJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	txid, err := hex.DecodeString(j.TxID)
	if err != nil {
		return err
	}
	scr, err := hex.DecodeString(j.Script)
	if err != nil {
		return err
	}
	*r = Record{
		UTXO:   UTXO{TxID: txid, Vout: j.Vout, Value: j.Value},
		Script: scr,
		Type:   j.Type,
		Height: j.Height,
	}
	return nil
}
