package types

import (
	"errors"
	"fmt"
	"strconv"
)

// SatoshisPerCoin is the number of base units in one coin.
const SatoshisPerCoin = 100_000_000

// MaxSatoshis is the total supply cap in base units.
const MaxSatoshis = 21_000_000 * SatoshisPerCoin

// ErrInvalidAmount is returned for malformed or out-of-range amounts.
var ErrInvalidAmount = errors.New("invalid satoshi amount")

// ParseSatoshis parses a base-10 satoshi amount made of digits only.
// Either sign ("+5" included), decimal points and values above
// MaxSatoshis are rejected.
func ParseSatoshis(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v > MaxSatoshis {
		return 0, fmt.Errorf("%w: %d exceeds max supply", ErrInvalidAmount, v)
	}
	return v, nil
}
