package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	mn := Default(Mainnet)
	if mn.Network != Mainnet {
		t.Errorf("Network = %q, want mainnet", mn.Network)
	}
	if mn.Wallet.Lookahead != DefaultLookahead || !mn.Wallet.Witness {
		t.Errorf("wallet defaults = %+v", mn.Wallet)
	}
	if err := Validate(mn); err != nil {
		t.Errorf("default mainnet config invalid: %v", err)
	}

	test := Default(Testnet)
	if !test.Testnet() {
		t.Error("Default(Testnet) should be testnet")
	}
	if err := Validate(test); err != nil {
		t.Errorf("default testnet config invalid: %v", err)
	}
}

func TestConfigPaths(t *testing.T) {
	cfg := Default(Testnet)
	cfg.DataDir = "/data"
	if got, want := cfg.UTXODir(), filepath.Join("/data", "testnet", "utxo"); got != want {
		t.Errorf("UTXODir() = %q, want %q", got, want)
	}
	if got, want := cfg.ConfigFile(), filepath.Join("/data", "klingscript.conf"); got != want {
		t.Errorf("ConfigFile() = %q, want %q", got, want)
	}
}

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConf(t, `
# comment
network = testnet
log.level = "debug"
wallet.witness = 'no'
fee.rate=5
`)
	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	want := map[string]string{
		"network":        "testnet",
		"log.level":      "debug",
		"wallet.witness": "no",
		"fee.rate":       "5",
	}
	if len(values) != len(want) {
		t.Fatalf("got %d values, want %d: %v", len(values), len(want), values)
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("values[%q] = %q, want %q", k, values[k], v)
		}
	}
}

func TestLoadFile_Missing(t *testing.T) {
	values, err := LoadFile(filepath.Join(t.TempDir(), "nope.conf"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("missing file should give empty map, got %v", values)
	}
}

func TestLoadFile_BadLine(t *testing.T) {
	path := writeConf(t, "network = mainnet\njunk\n")
	if _, err := LoadFile(path); err == nil {
		t.Error("expected error for line without '='")
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := Default(Mainnet)
	err := ApplyFileConfig(cfg, map[string]string{
		"network":          "TESTNET",
		"wallet.account":   "3",
		"wallet.lookahead": "50",
		"wallet.witness":   "false",
		"fee.rate":         "12",
		"log.json":         "yes",
		"unknown.key":      "ignored",
	})
	if err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("Network = %q", cfg.Network)
	}
	if cfg.Wallet.Account != 3 || cfg.Wallet.Lookahead != 50 || cfg.Wallet.Witness {
		t.Errorf("Wallet = %+v", cfg.Wallet)
	}
	if cfg.Fee.Rate != 12 || !cfg.Log.JSON {
		t.Errorf("Fee = %+v, Log = %+v", cfg.Fee, cfg.Log)
	}
}

func TestApplyFileConfig_BadNumber(t *testing.T) {
	for _, key := range []string{"wallet.account", "wallet.lookahead", "fee.rate"} {
		cfg := Default(Mainnet)
		if err := ApplyFileConfig(cfg, map[string]string{key: "-1"}); err == nil {
			t.Errorf("%s = -1 should fail", key)
		}
	}
}

func TestWriteDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "klingscript.conf")
	if err := WriteDefaultConfig(path, Testnet); err != nil {
		t.Fatalf("WriteDefaultConfig() error: %v", err)
	}
	values, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	cfg := Default(Mainnet)
	if err := ApplyFileConfig(cfg, values); err != nil {
		t.Fatalf("ApplyFileConfig() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("Network = %q, want testnet", cfg.Network)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("written default config invalid: %v", err)
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{"--testnet", "--legacy", "--log-level=debug", "utxo", "list", "p2pkh"})
	if err != nil {
		t.Fatalf("ParseFlags() error: %v", err)
	}
	if f.Network != "testnet" || !f.Legacy || !f.SetLegacy || f.LogLevel != "debug" {
		t.Errorf("flags = %+v", f)
	}
	if len(f.Args) != 3 || f.Args[0] != "utxo" {
		t.Errorf("Args = %v", f.Args)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	if _, err := ParseFlags([]string{"--help"}); err != nil {
		t.Errorf("--help is a defined flag, got error %v", err)
	}
	if _, err := ParseFlags([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h error = %v, want flag.ErrHelp", err)
	}
	if _, err := ParseFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("unknown flag should fail")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := Default(Mainnet)
	f := &Flags{
		Network:    "testnet",
		DataDir:    "/tmp/x",
		Lookahead:  7,
		FeeRate:    9,
		Legacy:     true,
		SetLegacy:  true,
		Account:    0,
		SetAccount: true,
		LogJSON:    true,
		SetLogJSON: true,
	}
	cfg.Wallet.Account = 4
	ApplyFlags(cfg, f)
	if cfg.Network != Testnet || cfg.DataDir != "/tmp/x" {
		t.Errorf("core = %q %q", cfg.Network, cfg.DataDir)
	}
	if cfg.Wallet.Account != 0 || cfg.Wallet.Lookahead != 7 || cfg.Wallet.Witness {
		t.Errorf("Wallet = %+v", cfg.Wallet)
	}
	if cfg.Fee.Rate != 9 || !cfg.Log.JSON {
		t.Errorf("Fee = %+v, Log = %+v", cfg.Fee, cfg.Log)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"network", func(c *Config) { c.Network = "regtest" }},
		{"datadir", func(c *Config) { c.DataDir = "" }},
		{"log level", func(c *Config) { c.Log.Level = "verbose" }},
		{"lookahead zero", func(c *Config) { c.Wallet.Lookahead = 0 }},
		{"lookahead big", func(c *Config) { c.Wallet.Lookahead = MaxLookahead + 1 }},
		{"account hardened", func(c *Config) { c.Wallet.Account = 1 << 31 }},
		{"fee rate too high", func(c *Config) { c.Fee.Rate = MaxFeeRate + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default(Mainnet)
			tt.mutate(cfg)
			if err := Validate(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if err := Validate(nil); err == nil {
		t.Error("nil config should fail")
	}
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	conf := writeConf(t, "network = testnet\nfee.rate = 4\nwallet.lookahead = 30\n")

	cfg, flags, err := Load([]string{"--datadir", dir, "--config", conf, "--fee-rate", "8", "inspect", "0014"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Network != Testnet {
		t.Errorf("file should set network, got %q", cfg.Network)
	}
	if cfg.Fee.Rate != 8 {
		t.Errorf("flag should override file fee.rate, got %d", cfg.Fee.Rate)
	}
	if cfg.Wallet.Lookahead != 30 {
		t.Errorf("file lookahead = %d, want 30", cfg.Wallet.Lookahead)
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if len(flags.Args) != 2 || flags.Args[0] != "inspect" {
		t.Errorf("Args = %v", flags.Args)
	}

	// Load does not touch the filesystem.
	if _, err := os.Stat(cfg.UTXODir()); !os.IsNotExist(err) {
		t.Errorf("Load should not create %s", cfg.UTXODir())
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Load([]string{"--datadir", dir, "--network", "regtest"}); err == nil {
		t.Error("unknown network should fail")
	}
	if _, _, err := Load([]string{"--datadir", dir, "--fee-rate", "18446744073709551615"}); err == nil {
		t.Error("fee rate above the cap should fail")
	}
}

func TestValidate_FeeRateBounds(t *testing.T) {
	cfg := Default(Mainnet)
	for _, rate := range []uint64{0, 1, MaxFeeRate} {
		cfg.Fee.Rate = rate
		if err := Validate(cfg); err != nil {
			t.Errorf("fee.rate %d rejected: %v", rate, err)
		}
	}
}

func TestEnsureDataDirs(t *testing.T) {
	cfg := Default(Mainnet)
	cfg.DataDir = filepath.Join(t.TempDir(), "ks")
	for i := 0; i < 2; i++ {
		if err := EnsureDataDirs(cfg); err != nil {
			t.Fatalf("EnsureDataDirs() pass %d error: %v", i, err)
		}
	}
	if info, err := os.Stat(cfg.UTXODir()); err != nil || !info.IsDir() {
		t.Errorf("UTXO dir missing: %v", err)
	}
	if _, err := os.Stat(cfg.ConfigFile()); err != nil {
		t.Errorf("config file missing: %v", err)
	}
}
