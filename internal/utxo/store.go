package utxo

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/Klingon-tech/klingscript/internal/log"
	"github.com/Klingon-tech/klingscript/internal/storage"
	"github.com/Klingon-tech/klingscript/pkg/script"
	"github.com/Klingon-tech/klingscript/pkg/types"
)

// ErrInvalidUTXO is returned for records the store cannot key.
var ErrInvalidUTXO = errors.New("invalid utxo")

// Key prefixes for the UTXO store.
var (
	prefixUTXO = []byte("u/") // u/<txid><vout> -> Record JSON
	prefixType = []byte("t/") // t/<type><txid><vout> -> empty (type index)
)

const outpointKeySize = types.HashSize + 4

// Store is a UTXO set backed by a storage.DB.
type Store struct {
	db storage.DB
}

// NewStore creates a new UTXO store backed by the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// outpointKey encodes txid(32) + vout(4, big-endian so keys sort by index).
func outpointKey(txid []byte, vout uint32) []byte {
	key := make([]byte, outpointKeySize)
	copy(key, txid)
	binary.BigEndian.PutUint32(key[types.HashSize:], vout)
	return key
}

func utxoKey(txid []byte, vout uint32) []byte {
	return append(append([]byte{}, prefixUTXO...), outpointKey(txid, vout)...)
}

func typeKey(t script.Type, txid []byte, vout uint32) []byte {
	key := make([]byte, 0, len(prefixType)+1+outpointKeySize)
	key = append(key, prefixType...)
	key = append(key, byte(t))
	return append(key, outpointKey(txid, vout)...)
}

// wireTxID converts a display-order outpoint txid to wire bytes.
func wireTxID(op types.Outpoint) ([]byte, error) {
	h, err := types.HashFromDisplay(op.TxID)
	if err != nil {
		return nil, fmt.Errorf("%w: outpoint %s: %v", ErrInvalidUTXO, op, err)
	}
	return h.Bytes(), nil
}

// Put classifies the record's script, stores the record and updates the
// type index. The record's Type field is overwritten with the result.
func (s *Store) Put(r *Record) error {
	if len(r.TxID) != types.HashSize {
		return fmt.Errorf("%w: txid must be %d bytes, got %d", ErrInvalidUTXO, types.HashSize, len(r.TxID))
	}
	r.Type = script.Classify(r.Script)

	key := utxoKey(r.TxID, r.Vout)
	prev, err := s.db.Get(key)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("utxo get: %w", err)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("utxo marshal: %w", err)
	}
	if err := s.db.Put(key, data); err != nil {
		return fmt.Errorf("utxo put: %w", err)
	}
	if err := s.db.Put(typeKey(r.Type, r.TxID, r.Vout), []byte{}); err != nil {
		// Roll the record back so it never exists without its index entry.
		if rerr := s.restore(key, prev); rerr != nil {
			log.UTXO.Error().Err(rerr).Str("outpoint", r.Outpoint().String()).Msg("utxo rollback failed")
		}
		return fmt.Errorf("utxo index put: %w", err)
	}

	if prev != nil {
		var old Record
		if err := json.Unmarshal(prev, &old); err == nil && old.Type != r.Type {
			if err := s.db.Delete(typeKey(old.Type, r.TxID, r.Vout)); err != nil {
				return fmt.Errorf("utxo index delete: %w", err)
			}
		}
	}

	log.UTXO.Debug().
		Str("outpoint", r.Outpoint().String()).
		Stringer("type", r.Type).
		Uint64("value", r.Value).
		Msg("utxo stored")
	return nil
}

// restore puts prev back under key, or deletes key when prev is nil.
func (s *Store) restore(key, prev []byte) error {
	if prev == nil {
		return s.db.Delete(key)
	}
	return s.db.Put(key, prev)
}

// Get retrieves a record by display-order outpoint.
func (s *Store) Get(op types.Outpoint) (*Record, error) {
	txid, err := wireTxID(op)
	if err != nil {
		return nil, err
	}
	return s.GetByTxID(txid, op.Index)
}

// GetByTxID retrieves a record by wire-order txid and output index.
func (s *Store) GetByTxID(txid []byte, vout uint32) (*Record, error) {
	data, err := s.db.Get(utxoKey(txid, vout))
	if err != nil {
		return nil, fmt.Errorf("utxo get: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("utxo unmarshal: %w", err)
	}
	return &r, nil
}

// Has checks if a record exists for the given outpoint.
func (s *Store) Has(op types.Outpoint) (bool, error) {
	txid, err := wireTxID(op)
	if err != nil {
		return false, err
	}
	return s.db.Has(utxoKey(txid, op.Index))
}

// Spend removes a record and its index entry, returning the removed
// record. Spending an unknown outpoint fails with storage.ErrNotFound.
func (s *Store) Spend(op types.Outpoint) (*Record, error) {
	r, err := s.Get(op)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(typeKey(r.Type, r.TxID, r.Vout)); err != nil {
		return nil, fmt.Errorf("utxo index delete: %w", err)
	}
	if err := s.db.Delete(utxoKey(r.TxID, r.Vout)); err != nil {
		return nil, fmt.Errorf("utxo delete: %w", err)
	}
	l := log.WithOutpoint(op.String())
	l.Debug().Uint64("value", r.Value).Msg("utxo spent")
	return r, nil
}

// ForEach iterates over all records in outpoint order.
func (s *Store) ForEach(fn func(*Record) error) error {
	return s.db.ForEach(prefixUTXO, func(_, value []byte) error {
		var r Record
		if err := json.Unmarshal(value, &r); err != nil {
			return fmt.Errorf("utxo unmarshal: %w", err)
		}
		return fn(&r)
	})
}

// ByType returns all records whose script has the given classification.
func (s *Store) ByType(t script.Type) ([]*Record, error) {
	prefix := append(append([]byte{}, prefixType...), byte(t))

	var outpoints [][]byte
	err := s.db.ForEach(prefix, func(key, _ []byte) error {
		// Key layout: "t/" + type(1) + txid(32) + vout(4).
		if len(key) != len(prefix)+outpointKeySize {
			return nil // Malformed key, skip.
		}
		op := make([]byte, outpointKeySize)
		copy(op, key[len(prefix):])
		outpoints = append(outpoints, op)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan type index: %w", err)
	}

	records := make([]*Record, 0, len(outpoints))
	for _, op := range outpoints {
		r, err := s.GetByTxID(op[:types.HashSize], binary.BigEndian.Uint32(op[types.HashSize:]))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue // Index entry without a record.
			}
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// Total returns the number of records and the sum of their values.
func (s *Store) Total() (int, uint64, error) {
	var (
		count int
		sum   uint64
	)
	err := s.ForEach(func(r *Record) error {
		if sum > math.MaxUint64-r.Value {
			return fmt.Errorf("utxo total overflows uint64")
		}
		count++
		sum += r.Value
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return count, sum, nil
}
