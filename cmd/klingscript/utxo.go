package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Klingon-tech/klingscript/config"
	"github.com/Klingon-tech/klingscript/internal/log"
	"github.com/Klingon-tech/klingscript/internal/storage"
	"github.com/Klingon-tech/klingscript/internal/utxo"
	"github.com/Klingon-tech/klingscript/pkg/script"
	"github.com/Klingon-tech/klingscript/pkg/types"
)

// utxoPrefix namespaces the UTXO set inside the network database.
var utxoPrefix = []byte("utxo/")

// openStore opens the on-disk UTXO set for the configured network. The
// caller must invoke the returned close function.
func (c *cli) openStore() (*utxo.Store, func(), error) {
	if err := config.EnsureDataDirs(c.cfg); err != nil {
		return nil, nil, err
	}
	db, err := storage.NewBadger(c.cfg.UTXODir())
	if err != nil {
		return nil, nil, err
	}
	log.Storage.Debug().Str("path", c.cfg.UTXODir()).Msg("utxo database opened")

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.Storage.Error().Err(err).Msg("close utxo database")
		}
	}
	return utxo.NewStore(storage.NewPrefixDB(db, utxoPrefix)), closeFn, nil
}

func (c *cli) cmdUTXO(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: klingscript utxo <add|get|spend|list|commitment>", errUsage)
	}

	store, closeFn, err := c.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	switch args[0] {
	case "add":
		return c.cmdUTXOAdd(store, args[1:])
	case "get":
		return c.cmdUTXOGet(store, args[1:])
	case "spend":
		return c.cmdUTXOSpend(store, args[1:])
	case "list":
		return c.cmdUTXOList(store, args[1:])
	case "commitment":
		return c.cmdUTXOCommitment(store, args[1:])
	default:
		return fmt.Errorf("%w: unknown utxo command %q", errUsage, args[0])
	}
}

func (c *cli) cmdUTXOAdd(store *utxo.Store, args []string) error {
	if err := argN(args, 4, 5, "utxo add <txid> <vout> <sats> <script-hex> [height]"); err != nil {
		return err
	}
	txid, err := types.HashFromDisplay(args[0])
	if err != nil {
		return fmt.Errorf("txid: %w", err)
	}
	vout, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("vout: %w", err)
	}
	value, err := types.ParseSatoshis(args[2])
	if err != nil {
		return err
	}
	scr, err := types.DecodeHex(args[3])
	if err != nil {
		return fmt.Errorf("script: %w", err)
	}
	var height uint64
	if len(args) == 5 {
		height, err = strconv.ParseUint(args[4], 10, 64)
		if err != nil {
			return fmt.Errorf("height: %w", err)
		}
	}

	r := &utxo.Record{
		UTXO:   utxo.UTXO{TxID: txid.Bytes(), Vout: uint32(vout), Value: value},
		Script: scr,
		Height: height,
	}
	if err := store.Put(r); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s %s\n", r.Outpoint(), r.Type)
	return nil
}

func (c *cli) cmdUTXOGet(store *utxo.Store, args []string) error {
	if err := argN(args, 1, 1, "utxo get <txid:vout>"); err != nil {
		return err
	}
	op, err := types.ParseOutpoint(args[0])
	if err != nil {
		return err
	}
	r, err := store.Get(op)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	fmt.Fprintln(c.out, string(data))
	return nil
}

func (c *cli) cmdUTXOSpend(store *utxo.Store, args []string) error {
	if err := argN(args, 1, 1, "utxo spend <txid:vout>"); err != nil {
		return err
	}
	op, err := types.ParseOutpoint(args[0])
	if err != nil {
		return err
	}
	r, err := store.Spend(op)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "spent %s %d\n", op, r.Value)
	return nil
}

func (c *cli) cmdUTXOList(store *utxo.Store, args []string) error {
	if err := argN(args, 0, 1, "utxo list [p2pkh|p2wpkh|unknown]"); err != nil {
		return err
	}

	var records []*utxo.Record
	if len(args) == 1 {
		t, ok := script.ParseType(args[0])
		if !ok {
			return fmt.Errorf("unknown script type %q", args[0])
		}
		var err error
		if records, err = store.ByType(t); err != nil {
			return err
		}
	} else {
		err := store.ForEach(func(r *utxo.Record) error {
			records = append(records, r)
			return nil
		})
		if err != nil {
			return err
		}
	}

	var total uint64
	for _, r := range records {
		fmt.Fprintf(c.out, "%s %d %s %d\n", r.Outpoint(), r.Value, r.Type, r.Height)
		total += r.Value
	}
	fmt.Fprintf(c.out, "%d outputs, %d sats\n", len(records), total)
	return nil
}

func (c *cli) cmdUTXOCommitment(store *utxo.Store, args []string) error {
	if err := argN(args, 0, 0, "utxo commitment"); err != nil {
		return err
	}
	n, total, err := store.Total()
	if err != nil {
		return err
	}
	root, err := utxo.Commitment(store)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s\n%d outputs, %d sats\n", root, n, total)
	return nil
}
