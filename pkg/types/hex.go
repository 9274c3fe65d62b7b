package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrHexDecode is returned when a string is not valid hex.
var ErrHexDecode = errors.New("hex decode error")

// DecodeHex decodes a hex string, tolerating surrounding whitespace and
// an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHexDecode, err)
	}
	return b, nil
}

// HexToBytes decodes a strict hex string with no prefix or padding.
func HexToBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// BytesToHex returns the lowercase hex encoding of b.
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// FormatTxID renders a txid for display or logging.
func FormatTxID(txid string) string {
	return fmt.Sprintf("txid: %s", txid)
}
