package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/dcshock/gbopcodes/opcodes"
	"gopkg.in/yaml.v3"
)

// Defaults used when no configuration file overrides them.
const (
	DefaultURL      = opcodes.DefaultURL
	DefaultTable    = opcodes.Unprefixed
	DefaultOpcode   = opcodes.DefaultOpcode
	DefaultIndent   = 4
	DefaultPipeline = "gb-opcodes"
)

// DefaultStages is the stage order of the opcode fetch.
var DefaultStages = []string{"fetch", "decode", "lookup", "describe", "render"}

// Config is the root configuration of the opcode fetcher. Every field has a
// default (see Default); a YAML file only needs the keys it changes:
//
//	url: https://gbdev.io/gb-opcodes/Opcodes.json
//	table: cbprefixed
//	opcode: "0x11"
//	indent: 2
//	pipeline:
//	  name: gb-opcodes
//	  stages:
//	    - name: fetch
//	      timeout: 30s
//	    - decode
//	    - lookup
//	    - describe
//	    - render
type Config struct {
	URL      string         `yaml:"url"`
	Table    string         `yaml:"table"`
	Opcode   string         `yaml:"opcode"`
	Indent   int            `yaml:"indent"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// Default returns the built-in configuration: fetch DefaultURL, look up
// unprefixed 0x00 and print it with 4-space indentation.
func Default() *Config {
	stages := make([]StageRef, 0, len(DefaultStages))
	for _, name := range DefaultStages {
		stages = append(stages, StageRef{Name: name})
	}
	return &Config{
		URL:    DefaultURL,
		Table:  DefaultTable,
		Opcode: DefaultOpcode,
		Indent: DefaultIndent,
		Pipeline: PipelineConfig{
			Name:   DefaultPipeline,
			Stages: stages,
		},
	}
}

// Parse overlays YAML bytes on the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("config: url is required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("config: url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: url %q: scheme must be http or https", c.URL)
	}
	if c.Table == "" {
		return errors.New("config: table is required")
	}
	if c.Opcode == "" {
		return errors.New("config: opcode is required")
	}
	if c.Indent < 0 {
		return fmt.Errorf("config: indent %d must not be negative", c.Indent)
	}
	if len(c.Pipeline.Stages) == 0 {
		return errors.New("config: pipeline needs at least one stage")
	}
	for i, ref := range c.Pipeline.Stages {
		if ref.Name == "" {
			return fmt.Errorf("config: stage %d: name required", i)
		}
		if ref.Timeout < 0 {
			return fmt.Errorf("config: stage %d (%q): timeout must not be negative", i, ref.Name)
		}
	}
	return nil
}

// PipelineConfig names a pipeline and lists its stages in order.
type PipelineConfig struct {
	Name   string     `yaml:"name"`
	Stages []StageRef `yaml:"stages"`
}

// StageNames returns the stage names in order.
func (p *PipelineConfig) StageNames() []string {
	names := make([]string, 0, len(p.Stages))
	for _, ref := range p.Stages {
		names = append(names, ref.Name)
	}
	return names
}

// StageRef is a single stage entry: either a plain name or name + options.
// In YAML, a stage can be written as:
//   - decode
//   - name: fetch
//     timeout: 60s
type StageRef struct {
	Name string `yaml:"name"`

	// Timeout applied around the stage (e.g. "60s"). Zero means none.
	Timeout Duration `yaml:"timeout"`
}

// UnmarshalYAML allows a stage to be a string (stage name only) or a struct.
func (s *StageRef) UnmarshalYAML(value *yaml.Node) error {
	var nameOnly string
	if err := value.Decode(&nameOnly); err == nil {
		s.Name = nameOnly
		return nil
	}
	type raw StageRef
	return value.Decode((*raw)(s))
}

// Duration is a time.Duration that unmarshals from YAML strings (e.g. "60s", "5m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the standard time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }
