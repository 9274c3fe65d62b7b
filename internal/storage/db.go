// Package storage provides the key-value stores behind the UTXO set.
package storage

import "errors"

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("key not found")

// DB is the interface for key-value storage.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	// ForEach iterates over all keys with the given prefix in ascending
	// key order. Return a non-nil error from fn to stop iteration early.
	// Keys and values are only valid for the duration of the call.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}
