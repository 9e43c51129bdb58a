package oracle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/callcheck/internal/resolve"
)

const scriptYAML = `
answers:
  grasias: {select: Gracias}
  factura: {keep: {category: tramite, weight: 0}}
  pues: {keep: {category: muletilla}}
  y: {cancel: true}
`

func TestReject(t *testing.T) {
	d, err := Reject{}.Decide(context.Background(), resolve.Query{Word: "y", Suggestions: []string{"ya"}})
	require.NoError(t, err)
	assert.Equal(t, resolve.DecisionCancel, d.Kind)
}

func TestScript_Answers(t *testing.T) {
	s, err := ParseScript([]byte(scriptYAML))
	require.NoError(t, err)
	ctx := context.Background()

	d, err := s.Decide(ctx, resolve.Query{Word: "grasias"})
	require.NoError(t, err)
	assert.Equal(t, resolve.Select("gracias"), d)

	d, _ = s.Decide(ctx, resolve.Query{Word: "factura"})
	assert.Equal(t, resolve.KeepNew("tramite", 0), d)

	d, _ = s.Decide(ctx, resolve.Query{Word: "pues"})
	assert.Equal(t, resolve.DecisionKeep, d.Kind)
	assert.Nil(t, d.Weight, "omitted weight is withheld")

	d, _ = s.Decide(ctx, resolve.Query{Word: "y"})
	assert.Equal(t, resolve.Cancel(), d)

	d, _ = s.Decide(ctx, resolve.Query{Word: "otro", Suggestions: []string{"oro"}})
	assert.Equal(t, resolve.Cancel(), d, "unlisted words cancel by default")
}

func TestScript_FirstSuggestionDefault(t *testing.T) {
	s, err := NewScript(ScriptDoc{Default: DefaultFirstSuggestion})
	require.NoError(t, err)

	d, _ := s.Decide(context.Background(), resolve.Query{Word: "mall", Suggestions: []string{"mal", "mala"}})
	assert.Equal(t, resolve.Select("mal"), d)

	d, _ = s.Decide(context.Background(), resolve.Query{Word: "zzz"})
	assert.Equal(t, resolve.Cancel(), d)
}

func TestScript_RecordsQueries(t *testing.T) {
	s, err := NewScript(ScriptDoc{})
	require.NoError(t, err)

	q1 := resolve.Query{Word: "a", Suggestions: []string{"b"}}
	q2 := resolve.Query{Word: "c", Categories: []string{"saludo"}}
	s.Decide(context.Background(), q1)
	s.Decide(context.Background(), q2)

	assert.Equal(t, []resolve.Query{q1, q2}, s.Queries())
}

func TestScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"two actions", "answers: {y: {cancel: true, select: ya}}"},
		{"no action", "answers: {y: {}}"},
		{"unknown default", "default: maybe"},
		{"unknown field", "answers: {y: {drop: true}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scriptYAML), 0644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Len(t, s.answers, 4)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
