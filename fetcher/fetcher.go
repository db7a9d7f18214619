// Package fetcher wires the opcode fetch together: it registers the named
// stages the configuration refers to, builds the pipeline and runs it once.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dcshock/gbopcodes/config"
	"github.com/dcshock/gbopcodes/httpstages"
	"github.com/dcshock/gbopcodes/observer"
	"github.com/dcshock/gbopcodes/opcodes"
	"github.com/dcshock/gbopcodes/pipeline"
	"github.com/go-logr/logr"
)

// Options configures a fetch. A nil Config means config.Default(); a nil
// Client means http.DefaultClient; a zero Logger discards.
type Options struct {
	Config *config.Config
	Client *http.Client
	Logger logr.Logger
}

func (o Options) withDefaults() Options {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Logger.GetSink() == nil {
		o.Logger = logr.Discard()
	}
	return o
}

// NewRegistry registers the stages of the opcode fetch:
//
//	fetch   GET cfg.URL, require 200, output the body
//	decode  parse the body into an opcodes.Document
//	lookup  select cfg.Table / cfg.Opcode
//	describe  log the record as assembler text (verbose only, passes input through)
//	render  indent the record with cfg.Indent spaces
func NewRegistry(opts Options) *config.Registry {
	opts = opts.withDefaults()
	cfg := opts.Config
	log := opts.Logger

	reg := config.NewRegistry()
	reg.Register("fetch", httpstages.Get(opts.Client, cfg.URL))
	reg.Register("decode", httpstages.ParseJSONTo[opcodes.Document]())
	reg.Register("lookup", opcodes.LookupStage(cfg.Table, cfg.Opcode))
	reg.Register("render", httpstages.IndentJSON(cfg.Indent))
	reg.Register("describe", pipeline.Tap(func(ctx context.Context, v interface{}) {
		if !log.V(1).Enabled() {
			return
		}
		raw, err := toRaw(v)
		if err != nil {
			return
		}
		if inst, err := opcodes.Decode(raw); err == nil {
			log.V(1).Info("instruction", "table", cfg.Table, "opcode", cfg.Opcode, "asm", inst.String(), "bytes", inst.Bytes, "cycles", inst.Cycles)
		}
	}))
	return reg
}

func toRaw(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	}
	return nil, errors.New("not a JSON value")
}

// Fetch runs the configured pipeline once and returns the rendered record.
// It issues exactly one HTTP request and never retries.
func Fetch(ctx context.Context, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	reg := NewRegistry(opts)
	p, err := config.BuildPipeline(reg, &opts.Config.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	obs := observer.NewLogObserver(opts.Logger, opts.Config.Pipeline.StageNames()...)
	out, err := p.RunWithInput(ctx, nil, &pipeline.RunOptions{Observer: obs})
	if err != nil {
		return nil, err
	}
	body, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("pipeline %q: last stage must render bytes, got %T", p.Name, out)
	}
	return body, nil
}
