package main

import (
	"fmt"
	"strconv"

	"github.com/Klingon-tech/klingscript/internal/log"
	"github.com/Klingon-tech/klingscript/pkg/crypto"
	"github.com/Klingon-tech/klingscript/pkg/script"
	"github.com/Klingon-tech/klingscript/pkg/types"
)

// ── script analysis ─────────────────────────────────────────────────────

func (c *cli) cmdClassify(args []string) error {
	if err := argN(args, 1, 1, "classify <hex>"); err != nil {
		return err
	}
	b, err := types.DecodeHex(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, script.Classify(b))
	return nil
}

func (c *cli) cmdPushData(args []string) error {
	if err := argN(args, 1, 1, "pushdata <hex>"); err != nil {
		return err
	}
	b, err := types.DecodeHex(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, types.BytesToHex(script.ExtractPushData(b)))
	return nil
}

func (c *cli) cmdInspect(args []string) error {
	if err := argN(args, 1, 1, "inspect <hex>"); err != nil {
		return err
	}
	b, err := types.DecodeHex(args[0])
	if err != nil {
		return err
	}

	r := script.Inspect(b)
	log.Script.Debug().Int("len", len(b)).Stringer("type", r.Type).Msg("inspect")

	fmt.Fprintf(c.out, "Type:       %s\n", r.Type)
	if !r.Recognized() {
		return nil
	}
	fmt.Fprintf(c.out, "PushData:   %s\n", types.BytesToHex(r.PushData))
	if r.PubKeyHash != nil {
		fmt.Fprintf(c.out, "PubKeyHash: %s\n", types.BytesToHex(r.PubKeyHash))
	}
	fmt.Fprint(c.out, "Opcodes:   ")
	for _, op := range r.Ops {
		fmt.Fprintf(c.out, " %s", op)
	}
	fmt.Fprintln(c.out)
	if r.OpErr != nil {
		fmt.Fprintf(c.out, "Decode:     %v\n", r.OpErr)
	}
	return nil
}

func (c *cli) cmdOpcode(args []string) error {
	if err := argN(args, 1, 1, "opcode <hexbyte>"); err != nil {
		return err
	}
	b, err := types.DecodeHex(args[0])
	if err != nil {
		return err
	}
	if len(b) != 1 {
		return fmt.Errorf("opcode must be exactly one byte, got %d", len(b))
	}
	op, err := script.DecodeOpcode(b[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, op)
	return nil
}

// ── byte order and hashing ──────────────────────────────────────────────

func (c *cli) cmdReverse(args []string) error {
	if err := argN(args, 1, 1, "reverse <hex>"); err != nil {
		return err
	}
	b, err := types.DecodeHex(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, types.BytesToHex(types.ReverseBytes(b)))
	return nil
}

func (c *cli) cmdU32LE(args []string) error {
	if err := argN(args, 1, 1, "u32le <n>"); err != nil {
		return err
	}
	n, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid uint32 %q: %w", args[0], err)
	}
	le := types.SwapU32Endian(uint32(n))
	fmt.Fprintln(c.out, types.BytesToHex(le[:]))
	return nil
}

func (c *cli) cmdHash160(args []string) error {
	if err := argN(args, 1, 1, "hash160 <hex>"); err != nil {
		return err
	}
	b, err := types.DecodeHex(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, types.BytesToHex(crypto.Hash160(b)))
	return nil
}

func (c *cli) cmdPubKey(args []string) error {
	if err := argN(args, 1, 1, "pubkey <hex>"); err != nil {
		return err
	}
	b, err := types.DecodeHex(args[0])
	if err != nil {
		return err
	}

	var pub []byte
	if len(b) == 32 {
		pub, err = crypto.PubKeyFromPrivate(b)
	} else {
		pub, err = crypto.ParsePubKey(b)
	}
	if err != nil {
		return err
	}
	hash := crypto.Hash160(pub)
	p2pkh, err := script.PayToPubKeyHash(hash)
	if err != nil {
		return err
	}
	p2wpkh, err := script.PayToWitnessPubKeyHash(hash)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "PubKey:     %s\n", types.BytesToHex(pub))
	fmt.Fprintf(c.out, "PubKeyHash: %s\n", types.BytesToHex(hash))
	fmt.Fprintf(c.out, "P2PKH:      %s\n", types.BytesToHex(p2pkh))
	fmt.Fprintf(c.out, "P2WPKH:     %s\n", types.BytesToHex(p2wpkh))
	return nil
}

func (c *cli) cmdTxID(args []string) error {
	if err := argN(args, 1, 1, "txid <display-hex>"); err != nil {
		return err
	}
	h, err := types.HashFromDisplay(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, types.FormatTxID(h.String()))
	fmt.Fprintf(c.out, "wire: %s\n", h.WireHex())
	return nil
}
