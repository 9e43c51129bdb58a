// Package config loads callcheck settings from YAML, applies environment
// overrides and validates the result against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/protocol"
	"github.com/roach88/callcheck/internal/similarity"
	"github.com/roach88/callcheck/internal/transcript"
)

//go:embed schema.cue
var schemaSource string

// DefaultPath is read when no config file is named and it exists.
const DefaultPath = "callcheck.yaml"

// Oracle kinds.
const (
	OracleReject = "reject"
	OracleScript = "script"
	OraclePrompt = "prompt"
	OracleLLM    = "llm"
)

// Environment variables that override file settings.
const (
	EnvDB       = "CALLCHECK_DB"
	EnvOracle   = "CALLCHECK_ORACLE"
	EnvLogLevel = "CALLCHECK_LOG_LEVEL"
	EnvAPIKey   = "OPENAI_API_KEY"
)

// ErrMissingAPIKey is returned by Validate when the llm oracle is selected
// without an API key.
var ErrMissingAPIKey = errors.New("oracle kind llm requires " + EnvAPIKey)

// ErrSameLabels is returned by Validate when both speakers share one label.
var ErrSameLabels = errors.New("transcript.customer_label must differ from transcript.agent_label")

// Lexicon locates the lexicon database.
type Lexicon struct {
	Path   string `yaml:"path" json:"path"`
	Driver string `yaml:"driver" json:"driver"`
}

// Transcript holds the speaker labels that open each turn.
type Transcript struct {
	AgentLabel    string `yaml:"agent_label" json:"agent_label"`
	CustomerLabel string `yaml:"customer_label" json:"customer_label"`
}

// Suggest bounds the suggestion list shown to the oracle.
type Suggest struct {
	Threshold int `yaml:"threshold" json:"threshold"`
	Max       int `yaml:"max" json:"max"`
}

// Oracle selects how unknown words are resolved.
type Oracle struct {
	Kind   string `yaml:"kind" json:"kind"`
	Script string `yaml:"script" json:"script"`
	Model  string `yaml:"model" json:"model"`
	// APIKey only ever comes from the environment.
	APIKey string `yaml:"-" json:"-"`
}

// Log sets the logger level.
type Log struct {
	Level string `yaml:"level" json:"level"`
}

// Config is the complete callcheck configuration.
type Config struct {
	Lexicon    Lexicon          `yaml:"lexicon" json:"lexicon"`
	Transcript Transcript       `yaml:"transcript" json:"transcript"`
	Suggest    Suggest          `yaml:"suggest" json:"suggest"`
	Protocol   protocol.Phrases `yaml:"protocol" json:"protocol"`
	Oracle     Oracle           `yaml:"oracle" json:"oracle"`
	Log        Log              `yaml:"log" json:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Lexicon:    Lexicon{Path: "callcheck.db", Driver: lexicon.DriverCgo},
		Transcript: Transcript{AgentLabel: transcript.DefaultAgentLabel, CustomerLabel: transcript.DefaultCustomerLabel},
		Suggest:    Suggest{Threshold: similarity.DefaultThreshold, Max: similarity.DefaultMax},
		Protocol:   protocol.DefaultPhrases(),
		Oracle:     Oracle{Kind: OracleReject, Model: "gpt-4o-mini"},
		Log:        Log{Level: "info"},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates. An empty path reads DefaultPath if present and otherwise uses
// the defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates, without consulting the
// environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// ApplyEnv overrides settings from environment variables read with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvDB); v != "" {
		c.Lexicon.Path = v
	}
	if v := getenv(EnvOracle); v != "" {
		c.Oracle.Kind = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvAPIKey); v != "" {
		c.Oracle.APIKey = v
	}
}

// Validate checks c against the embedded schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	v := schema.Unify(ctx.Encode(c.normalized()))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Transcript.AgentLabel == c.Transcript.CustomerLabel {
		return fmt.Errorf("invalid config: %w", ErrSameLabels)
	}
	if c.Oracle.Kind == OracleLLM && c.Oracle.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Oracle.Kind == OracleScript && c.Oracle.Script == "" {
		return errors.New("invalid config: oracle kind script requires oracle.script")
	}
	return nil
}

// normalized replaces nil phrase lists with empty ones so they encode as
// CUE lists rather than null.
func (c *Config) normalized() *Config {
	n := *c
	for _, l := range []*[]string{&n.Protocol.Greeting, &n.Protocol.Identification, &n.Protocol.Prohibited, &n.Protocol.Closing} {
		if *l == nil {
			*l = []string{}
		}
	}
	return &n
}

// SimilarityOptions returns the suggestion settings.
func (c *Config) SimilarityOptions() similarity.Options {
	return similarity.Options{Threshold: c.Suggest.Threshold, Max: c.Suggest.Max}
}

// Labels returns the transcript speaker labels.
func (c *Config) Labels() transcript.Labels {
	return transcript.Labels{Agent: c.Transcript.AgentLabel, Customer: c.Transcript.CustomerLabel}
}
