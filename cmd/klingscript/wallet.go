package main

import (
	"fmt"
	"strconv"

	"github.com/Klingon-tech/klingscript/internal/wallet"
	"github.com/Klingon-tech/klingscript/pkg/types"
)

// defaultMnemonicWords is the length of generated mnemonics.
const defaultMnemonicWords = 24

func (c *cli) cmdWallet(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: klingscript wallet <new|addresses|balance>", errUsage)
	}

	switch args[0] {
	case "new":
		return c.cmdWalletNew(args[1:])
	case "addresses":
		return c.cmdWalletAddresses(args[1:])
	case "balance":
		return c.cmdWalletBalance(args[1:])
	default:
		return fmt.Errorf("%w: unknown wallet command %q", errUsage, args[0])
	}
}

// purpose returns the BIP-43 purpose matching the configured output type.
func (c *cli) purpose() uint32 {
	if c.cfg.Wallet.Witness {
		return wallet.PurposeBIP84
	}
	return wallet.PurposeBIP44
}

// masterKey reads a mnemonic and returns its master key.
func (c *cli) masterKey() (*wallet.HDKey, error) {
	mnemonic, err := c.readSecret("Mnemonic: ")
	if err != nil {
		return nil, err
	}
	seed, err := wallet.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return nil, err
	}
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()
	return wallet.NewMasterKey(seed)
}

func (c *cli) cmdWalletNew(args []string) error {
	if err := argN(args, 0, 1, "wallet new [words]"); err != nil {
		return err
	}
	words := defaultMnemonicWords
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid word count %q", args[0])
		}
		words = n
	}

	mnemonic, err := wallet.GenerateMnemonic(words)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Mnemonic (write this down!):")
	fmt.Fprintf(c.out, "  %s\n", mnemonic)
	return nil
}

func (c *cli) cmdWalletAddresses(args []string) error {
	if err := argN(args, 0, 1, "wallet addresses [count]"); err != nil {
		return err
	}
	count := uint64(c.cfg.Wallet.Lookahead)
	if len(args) == 1 {
		n, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		count = n
	}

	master, err := c.masterKey()
	if err != nil {
		return err
	}

	purpose := c.purpose()
	coinType := wallet.CoinType(c.cfg.Testnet())
	account := c.cfg.Wallet.Account
	for i := uint32(0); uint64(i) < count; i++ {
		k, err := master.DeriveAddress(purpose, coinType, account, wallet.ChangeExternal, i)
		if err != nil {
			return err
		}
		scr, err := k.Script(purpose)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "m/%d'/%d'/%d'/0/%d %s %s\n",
			purpose-wallet.HardenedOffset, coinType-wallet.HardenedOffset, account, i,
			types.BytesToHex(k.PublicKeyBytes()), types.BytesToHex(scr))
	}
	return nil
}

func (c *cli) cmdWalletBalance(args []string) error {
	if err := argN(args, 0, 1, "wallet balance [fee]"); err != nil {
		return err
	}
	var fee uint64
	feeGiven := len(args) == 1
	if feeGiven {
		var err error
		if fee, err = types.ParseSatoshis(args[0]); err != nil {
			return fmt.Errorf("fee: %w", err)
		}
	}

	master, err := c.masterKey()
	if err != nil {
		return err
	}
	w := wallet.NewWatcher()
	err = w.AddAccount(master, c.purpose(), wallet.CoinType(c.cfg.Testnet()),
		c.cfg.Wallet.Account, c.cfg.Wallet.Lookahead)
	if err != nil {
		return err
	}

	store, closeFn, err := c.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	bal, owned, err := w.Scan(store)
	if err != nil {
		return err
	}
	spendable := w.Balance()
	if !feeGiven {
		fee = wallet.EstimateFee(len(owned), 1, c.cfg.Wallet.Witness, c.cfg.Fee.Rate)
	}
	wallet.ApplyFee(&spendable, fee)

	fmt.Fprintf(c.out, "Outputs:     %d\n", len(owned))
	fmt.Fprintf(c.out, "Confirmed:   %d\n", bal.Confirmed)
	fmt.Fprintf(c.out, "Unconfirmed: %d\n", bal.Unconfirmed)
	fmt.Fprintf(c.out, "Total:       %d\n", bal.Total())
	fmt.Fprintf(c.out, "Fee:         %d\n", fee)
	fmt.Fprintf(c.out, "Spendable:   %d\n", spendable)
	return nil
}
