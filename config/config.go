// Package config handles klingscript configuration.
//
// Settings come from three layers, each overriding the previous one:
// built-in defaults, the key = value config file, and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Config holds runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Wallet
	Wallet WalletConfig

	// Fee estimation
	Fee FeeConfig

	// Logging
	Log LogConfig
}

// WalletConfig holds HD wallet settings.
type WalletConfig struct {
	Account   uint32 `conf:"wallet.account"`   // BIP-44/84 account index (unhardened)
	Lookahead uint32 `conf:"wallet.lookahead"` // Keys derived per chain when scanning
	Witness   bool   `conf:"wallet.witness"`   // BIP-84 P2WPKH instead of BIP-44 P2PKH
}

// FeeConfig holds fee estimation settings.
type FeeConfig struct {
	Rate uint64 `conf:"fee.rate"` // Satoshis per virtual byte
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// MaxLookahead bounds wallet.lookahead. Every key costs two EC point
// multiplications per scan.
const MaxLookahead = 10000

// MaxFeeRate bounds fee.rate in satoshis per vbyte.
const MaxFeeRate = 100_000

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.klingscript
//	macOS:   ~/Library/Application Support/Klingscript
//	Windows: %APPDATA%\Klingscript
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".klingscript"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Klingscript")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Klingscript")
		}
		return filepath.Join(home, "AppData", "Roaming", "Klingscript")
	default:
		return filepath.Join(home, ".klingscript")
	}
}

// NetworkDir returns the network-specific data directory.
func (c *Config) NetworkDir() string {
	return filepath.Join(c.DataDir, string(c.Network))
}

// UTXODir returns the UTXO database directory.
func (c *Config) UTXODir() string {
	return filepath.Join(c.NetworkDir(), "utxo")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "klingscript.conf")
}

// Testnet reports whether the configured network is testnet.
func (c *Config) Testnet() bool {
	return c.Network == Testnet
}
