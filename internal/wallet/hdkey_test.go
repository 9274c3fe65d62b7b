package wallet

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/Klingon-tech/klingscript/pkg/crypto"
	"github.com/Klingon-tech/klingscript/pkg/script"
)

const abandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// testMaster returns the master key for the BIP-39 "abandon ... about"
// mnemonic with an empty passphrase, the seed used by the BIP-84 vectors.
func testMaster(t *testing.T) *HDKey {
	t.Helper()
	seed, err := SeedFromMnemonic(abandonMnemonic, "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	master, err := NewMasterKey(seed)
	if err != nil {
		t.Fatalf("NewMasterKey() error: %v", err)
	}
	return master
}

func TestNewMasterKey(t *testing.T) {
	master := testMaster(t)
	if !master.IsPrivate() {
		t.Error("master key should be private")
	}
	if master.Depth() != 0 {
		t.Errorf("master key depth = %d, want 0", master.Depth())
	}
	if len(master.PublicKeyBytes()) != crypto.CompressedPubKeySize {
		t.Errorf("public key length = %d, want 33", len(master.PublicKeyBytes()))
	}
}

func TestNewMasterKey_InvalidSeedLength(t *testing.T) {
	tests := []struct {
		name string
		seed []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 32)},
		{"too long", make([]byte, 128)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMasterKey(tt.seed); err == nil {
				t.Error("expected error for invalid seed length")
			}
		})
	}
}

func TestDeriveAddress_BIP84Vector(t *testing.T) {
	// BIP-84 test vector: m/84'/0'/0'/0/0.
	key, err := testMaster(t).DeriveAddress(PurposeBIP84, CoinTypeMainnet, 0, ChangeExternal, 0)
	if err != nil {
		t.Fatalf("DeriveAddress() error: %v", err)
	}
	want := "0330d54fd0dd420a6e5f8d3624f5f3482cae350f79d5f0753bf5beef9c2d91af3c"
	if got := hex.EncodeToString(key.PublicKeyBytes()); got != want {
		t.Errorf("pubkey = %s, want %s", got, want)
	}
	if key.Depth() != 5 {
		t.Errorf("depth = %d, want 5", key.Depth())
	}
}

func TestDerivePath_MatchesSequential(t *testing.T) {
	master := testMaster(t)
	c1, _ := master.DeriveChild(PurposeBIP44)
	c2, _ := c1.DeriveChild(CoinTypeMainnet)

	combined, err := master.DerivePath(PurposeBIP44, CoinTypeMainnet)
	if err != nil {
		t.Fatalf("DerivePath() error: %v", err)
	}
	if !bytes.Equal(c2.PublicKeyBytes(), combined.PublicKeyBytes()) {
		t.Error("DerivePath should equal sequential DeriveChild")
	}
}

func TestDeriveAddress_Distinct(t *testing.T) {
	master := testMaster(t)
	base, _ := master.DeriveAddress(PurposeBIP44, CoinTypeMainnet, 0, ChangeExternal, 0)

	others := map[string][4]uint32{
		"purpose": {PurposeBIP84, CoinTypeMainnet, 0, ChangeExternal},
		"coin":    {PurposeBIP44, CoinTypeTestnet, 0, ChangeExternal},
		"account": {PurposeBIP44, CoinTypeMainnet, 1, ChangeExternal},
		"change":  {PurposeBIP44, CoinTypeMainnet, 0, ChangeInternal},
	}
	for name, p := range others {
		k, err := master.DeriveAddress(p[0], p[1], p[2], p[3], 0)
		if err != nil {
			t.Fatalf("%s: DeriveAddress() error: %v", name, err)
		}
		if bytes.Equal(k.PublicKeyBytes(), base.PublicKeyBytes()) {
			t.Errorf("changing %s should change the key", name)
		}
	}
}

func TestCoinType(t *testing.T) {
	if CoinType(false) != CoinTypeMainnet || CoinType(true) != CoinTypeTestnet {
		t.Error("CoinType mismatch")
	}
}

func TestHDKey_Script(t *testing.T) {
	key, _ := testMaster(t).DeriveAddress(PurposeBIP84, CoinTypeMainnet, 0, ChangeExternal, 0)
	hash := crypto.Hash160(key.PublicKeyBytes())
	if !bytes.Equal(key.PubKeyHash(), hash) {
		t.Error("PubKeyHash should be HASH160 of the compressed key")
	}

	w, err := key.Script(PurposeBIP84)
	if err != nil {
		t.Fatalf("Script(84) error: %v", err)
	}
	if script.Classify(w) != script.TypeP2WPKH {
		t.Errorf("BIP-84 script type = %v, want P2WPKH", script.Classify(w))
	}
	if !bytes.Equal(script.ExtractPushData(w), hash) {
		t.Error("P2WPKH push data should be the key hash")
	}

	l, err := key.Script(PurposeBIP44)
	if err != nil {
		t.Fatalf("Script(44) error: %v", err)
	}
	if script.Classify(l) != script.TypeP2PKH {
		t.Errorf("BIP-44 script type = %v, want P2PKH", script.Classify(l))
	}
	if got, ok := script.PubKeyHash(l); !ok || !bytes.Equal(got, hash) {
		t.Error("P2PKH script should commit to the key hash")
	}
}

func TestNeuter(t *testing.T) {
	master := testMaster(t)
	pub := master.Neuter()
	if pub.IsPrivate() {
		t.Error("neutered key should not be private")
	}
	if !bytes.Equal(master.PublicKeyBytes(), pub.PublicKeyBytes()) {
		t.Error("neutered key should have same public key")
	}
}

func TestNeuter_DeriveChild(t *testing.T) {
	master := testMaster(t)
	privChild, _ := master.DeriveChild(0)

	pubChild, err := master.Neuter().DeriveChild(0)
	if err != nil {
		t.Fatalf("DeriveChild from public key error: %v", err)
	}
	if !bytes.Equal(privChild.PublicKeyBytes(), pubChild.PublicKeyBytes()) {
		t.Error("public derivation should match private derivation")
	}
}

func TestNeuter_HardenedFails(t *testing.T) {
	if _, err := testMaster(t).Neuter().DeriveChild(PurposeBIP44); err == nil {
		t.Error("hardened derivation from a public key should fail")
	}
}
