// Command gbopcode downloads the Game Boy CPU opcode document and prints one
// instruction record as indented JSON.
//
// With no flags it prints the unprefixed 0x00 (NOP) record from
// https://gbdev.io/gb-opcodes/Opcodes.json with 4-space indentation.
//
//	gbopcode [-config file.yaml] [-url url] [-table unprefixed|cbprefixed] [-opcode 0xNN] [-v level]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dcshock/gbopcodes/config"
	"github.com/dcshock/gbopcodes/fetcher"
	"github.com/dcshock/gbopcodes/opcodes"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/tebeka/atexit"
)

type optionFlags struct {
	config    string
	url       string
	table     string
	opcode    string
	verbosity int
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		atexit.Exit(0)
	case err != nil:
		atexit.Fatalf("gbopcode: %v", err)
	}
	atexit.Exit(0)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, opts.verbosity)
	logger.V(1).Info("fetching opcode", "url", cfg.URL, "table", cfg.Table, "opcode", cfg.Opcode)

	out, err := fetcher.Fetch(ctx, fetcher.Options{Config: cfg, Logger: logger})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}

func parseFlags(args []string, stderr io.Writer) (optionFlags, error) {
	flags := flag.NewFlagSet("gbopcode", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var opts optionFlags
	flags.StringVar(&opts.config, "config", "", "YAML configuration file")
	flags.StringVar(&opts.url, "url", "", "opcode document URL (default "+config.DefaultURL+")")
	flags.StringVar(&opts.table, "table", "", "opcode table: "+opcodes.Unprefixed+" or "+opcodes.CBPrefixed)
	flags.StringVar(&opts.opcode, "opcode", "", "opcode to print, e.g. 0x00 or cb")
	flags.IntVar(&opts.verbosity, "v", 0, "log verbosity on stderr (1: stages, 2: stage starts)")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() != 0 {
		return opts, fmt.Errorf("unknown arguments: %v", flags.Args())
	}
	return opts, nil
}

// loadConfig starts from the defaults or the config file and applies flag overrides.
func loadConfig(opts optionFlags) (*config.Config, error) {
	cfg := config.Default()
	if opts.config != "" {
		var err error
		if cfg, err = config.Load(opts.config); err != nil {
			return nil, err
		}
	}
	if opts.url != "" {
		cfg.URL = opts.url
	}
	if opts.table != "" {
		if !opcodes.ValidTable(opts.table) {
			return nil, fmt.Errorf("table %q: want %s or %s", opts.table, opcodes.Unprefixed, opcodes.CBPrefixed)
		}
		cfg.Table = opts.table
	}
	if opts.opcode != "" {
		cfg.Opcode = opts.opcode
	}
	opcode, err := opcodes.NormalizeOpcode(cfg.Opcode)
	if err != nil {
		return nil, err
	}
	cfg.Opcode = opcode
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbosity int) logr.Logger {
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, funcr.Options{Verbosity: verbosity}).WithName("gbopcode")
}
