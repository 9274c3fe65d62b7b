package config

import (
	"fmt"

	"github.com/Klingon-tech/klingscript/internal/log"
)

// Validate checks config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	if !log.ValidLevel(cfg.Log.Level) {
		return fmt.Errorf("log.level %q is not a known level", cfg.Log.Level)
	}
	if cfg.Wallet.Lookahead == 0 || cfg.Wallet.Lookahead > MaxLookahead {
		return fmt.Errorf("wallet.lookahead must be in range [1, %d]", MaxLookahead)
	}
	if cfg.Fee.Rate > MaxFeeRate {
		return fmt.Errorf("fee.rate must be at most %d sat/vbyte", MaxFeeRate)
	}
	if cfg.Wallet.Account >= 1<<31 {
		return fmt.Errorf("wallet.account must be below 2^31")
	}
	return nil
}
