// klingscript is a command-line tool for inspecting Bitcoin output scripts
// and keeping a small local UTXO set with HD wallet balances.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Klingon-tech/klingscript/config"
	"github.com/Klingon-tech/klingscript/internal/log"
	"golang.org/x/term"
)

const version = "0.1.0"

// errUsage marks errors caused by a malformed command line.
var errUsage = errors.New("usage")

// cli carries the loaded configuration and I/O streams through a command.
type cli struct {
	cfg *config.Config
	in  io.Reader
	out io.Writer
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "%v\n\n", err)
			usage(os.Stderr)
			os.Exit(2)
		}
		fatal("%v", err)
	}
}

// run parses global flags, initializes logging and dispatches the command.
func run(args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, flags, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		usage(stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if flags.Version {
		fmt.Fprintf(stdout, "klingscript version %s\n", version)
		return nil
	}
	if flags.Help || len(flags.Args) == 0 {
		usage(stdout)
		return nil
	}

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log.CLI.Debug().
		Str("network", string(cfg.Network)).
		Str("datadir", cfg.DataDir).
		Strs("args", flags.Args).
		Msg("dispatch")

	c := &cli{cfg: cfg, in: stdin, out: stdout}
	cmd, cmdArgs := flags.Args[0], flags.Args[1:]

	switch cmd {
	case "classify":
		return c.cmdClassify(cmdArgs)
	case "pushdata":
		return c.cmdPushData(cmdArgs)
	case "inspect":
		return c.cmdInspect(cmdArgs)
	case "opcode":
		return c.cmdOpcode(cmdArgs)
	case "reverse":
		return c.cmdReverse(cmdArgs)
	case "u32le":
		return c.cmdU32LE(cmdArgs)
	case "hash160":
		return c.cmdHash160(cmdArgs)
	case "pubkey":
		return c.cmdPubKey(cmdArgs)
	case "txid":
		return c.cmdTxID(cmdArgs)
	case "utxo":
		return c.cmdUTXO(cmdArgs)
	case "wallet":
		return c.cmdWallet(cmdArgs)
	case "help":
		usage(stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: klingscript [global flags] <command> [args]

Global flags:
  --datadir <path>    Data directory (default: ~/.klingscript)
  --network <net>     mainnet (default) or testnet
  --testnet           Shorthand for --network=testnet
  --config, -c <file> Config file (default: <datadir>/klingscript.conf)
  --account <n>       Wallet account index
  --lookahead <n>     Keys derived per chain when scanning
  --legacy            Use BIP-44 P2PKH instead of BIP-84 P2WPKH
  --fee-rate <n>      Fee rate in satoshis per vbyte
  --log-level <lvl>   debug, info, warn (default), error, disabled
  --log-file <path>   Also write JSON logs to a file
  --log-json          Output logs as JSON
  --version, -v       Show version information

Script commands:
  classify <hex>                  Print the script type
  pushdata <hex>                  Print the P2WPKH push data
  inspect <hex>                   Classify, extract and decode a script
  opcode <hexbyte>                Decode a single opcode byte
  reverse <hex>                   Reverse byte order (wire <-> display)
  u32le <n>                       Encode a uint32 as 4 little-endian bytes
  hash160 <hex>                   RIPEMD160(SHA256(data))
  pubkey <hex>                    Normalize a public key (or derive one from
                                  a 32-byte secret) and print its scripts
  txid <display-hex>              Validate a txid and show its wire form

UTXO commands:
  utxo add <txid> <vout> <sats> <script-hex> [height]
                                  Add an output (height 0 = unconfirmed)
  utxo get <txid:vout>            Show an output as JSON
  utxo spend <txid:vout>          Remove an output
  utxo list [type]                List outputs, optionally by script type
  utxo commitment                 Print the UTXO set commitment

Wallet commands (mnemonic read from the terminal or stdin):
  wallet new [words]              Generate a mnemonic (12-24 words)
  wallet addresses [count]        Show receive scripts for the account
  wallet balance [fee]            Scan the UTXO set for owned outputs
`)
}

// readSecret prompts for a line of secret input. On a terminal the input is
// not echoed; otherwise one line is read from the input stream.
func (c *cli) readSecret(prompt string) (string, error) {
	if f, ok := c.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(os.Stderr) // newline after hidden input
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(c.in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// argN checks that a command received between min and max operands.
func argN(args []string, lo, hi int, syntax string) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("%w: klingscript %s", errUsage, syntax)
	}
	return nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
