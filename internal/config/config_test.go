package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/callcheck/internal/lexicon"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "callcheck.db", cfg.Lexicon.Path)
	assert.Equal(t, OracleReject, cfg.Oracle.Kind)
	assert.Equal(t, 2, cfg.SimilarityOptions().Threshold)
	assert.Equal(t, 5, cfg.SimilarityOptions().Max)
	assert.Equal(t, "Agent:", cfg.Labels().Agent)
	assert.Contains(t, cfg.Protocol.Prohibited, "tonto")
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
lexicon:
  path: /tmp/lex.db
  driver: sqlite
transcript:
  agent_label: "Agente:"
  customer_label: "Cliente:"
suggest:
  threshold: 1
protocol:
  closing: [adiós]
`))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lex.db", cfg.Lexicon.Path)
	assert.Equal(t, lexicon.DriverPureGo, cfg.Lexicon.Driver)
	assert.Equal(t, "Agente:", cfg.Transcript.AgentLabel)
	assert.Equal(t, 1, cfg.Suggest.Threshold)
	assert.Equal(t, 5, cfg.Suggest.Max, "unset keys keep defaults")
	assert.Equal(t, []string{"adiós"}, cfg.Protocol.Closing)
	assert.Contains(t, cfg.Protocol.Greeting, "hola")
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("lexicon:\n  file: x.db\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file")
}

func TestParse_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad driver", "lexicon: {driver: postgres}"},
		{"empty path", `lexicon: {path: ""}`},
		{"negative threshold", "suggest: {threshold: -1}"},
		{"zero max", "suggest: {max: 0}"},
		{"bad oracle", "oracle: {kind: magic}"},
		{"bad level", "log: {level: loud}"},
		{"same labels", `transcript: {agent_label: "A:", customer_label: "A:"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestValidate_LabelsMustDiffer(t *testing.T) {
	cfg := Default()
	cfg.Transcript.CustomerLabel = cfg.Transcript.AgentLabel
	require.ErrorIs(t, cfg.Validate(), ErrSameLabels)

	cfg.Transcript.CustomerLabel = "Cliente:"
	require.NoError(t, cfg.Validate())
}

func TestValidate_DefaultWithCustomLabels(t *testing.T) {
	cfg, err := Parse([]byte(`transcript: {agent_label: "Agente:"}`))
	require.NoError(t, err)
	assert.Equal(t, "Agente:", cfg.Transcript.AgentLabel)
	assert.Equal(t, "Customer:", cfg.Transcript.CustomerLabel)
}

func TestParse_EmptyPhraseList(t *testing.T) {
	cfg, err := Parse([]byte("protocol:\n  prohibited: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Protocol.Prohibited)
}

func TestValidate_ScriptNeedsPath(t *testing.T) {
	cfg := Default()
	cfg.Oracle.Kind = OracleScript
	require.Error(t, cfg.Validate())

	cfg.Oracle.Script = "answers.yaml"
	require.NoError(t, cfg.Validate())
}

func TestValidate_LLMNeedsKey(t *testing.T) {
	cfg := Default()
	cfg.Oracle.Kind = OracleLLM
	require.ErrorIs(t, cfg.Validate(), ErrMissingAPIKey)

	cfg.Oracle.APIKey = "sk-test"
	require.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDB:       "/data/lex.db",
		EnvOracle:   OracleLLM,
		EnvLogLevel: "debug",
		EnvAPIKey:   "sk-test",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "/data/lex.db", cfg.Lexicon.Path)
	assert.Equal(t, OracleLLM, cfg.Oracle.Kind)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sk-test", cfg.Oracle.APIKey)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvOracle, "")
	t.Setenv(EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "callcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: {level: warn}\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvWins(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvOracle, "")
	t.Setenv(EnvLogLevel, "error")
	path := filepath.Join(t.TempDir(), "callcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: {level: warn}\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvDB, "")
	t.Setenv(EnvOracle, "")
	t.Setenv(EnvLogLevel, "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Lexicon, cfg.Lexicon)
}
