// Package wallet implements balance bookkeeping, fee arithmetic and a
// watch-only HD wallet that recognizes its own P2PKH and P2WPKH outputs.
package wallet

import "errors"

// ErrBalanceOverflow is returned when owned outputs sum past the uint64 max.
var ErrBalanceOverflow = errors.New("wallet balance overflows uint64")

// Wallet is anything that can report a spendable balance in satoshis.
type Wallet interface {
	Balance() uint64
}

// StaticWallet is a Wallet with a fixed confirmed balance.
type StaticWallet struct {
	Confirmed uint64
}

// Balance returns the confirmed balance.
func (w StaticWallet) Balance() uint64 {
	return w.Confirmed
}

// Balance splits a wallet's funds by confirmation state.
type Balance struct {
	Confirmed   uint64 `json:"confirmed"`
	Unconfirmed uint64 `json:"unconfirmed"`
}

// Total returns confirmed plus unconfirmed, saturating at the uint64 max.
func (b Balance) Total() uint64 {
	if b.Confirmed > ^uint64(0)-b.Unconfirmed {
		return ^uint64(0)
	}
	return b.Confirmed + b.Unconfirmed
}

// ApplyFee subtracts fee from *balance, clamping at zero.
func ApplyFee(balance *uint64, fee uint64) {
	if *balance >= fee {
		*balance -= fee
		return
	}
	*balance = 0
}
