package oracle

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/callcheck/internal/resolve"
)

var promptQuery = resolve.Query{
	Word:        "grasias",
	Suggestions: []string{"gracias", "grasa"},
	Categories:  []string{"despedida", "saludo"},
}

func decide(t *testing.T, input string) (resolve.Decision, string) {
	t.Helper()
	var out bytes.Buffer
	d, err := NewPrompt(strings.NewReader(input), &out).Decide(context.Background(), promptQuery)
	require.NoError(t, err)
	return d, out.String()
}

func TestPrompt_SelectByNumber(t *testing.T) {
	d, out := decide(t, "2\n")

	assert.Equal(t, resolve.Select("grasa"), d)
	assert.Contains(t, out, `Unknown word: "grasias"`)
	assert.Contains(t, out, "gracias")
	assert.Contains(t, out, "keep as new word")
}

func TestPrompt_SelectByWord(t *testing.T) {
	d, _ := decide(t, "GRACIAS\n")
	assert.Equal(t, resolve.Select("gracias"), d)
}

func TestPrompt_Cancel(t *testing.T) {
	for _, in := range []string{"c\n", "\n", ""} {
		d, _ := decide(t, in)
		assert.Equal(t, resolve.Cancel(), d, "input %q", in)
	}
}

func TestPrompt_RetriesInvalidChoice(t *testing.T) {
	d, out := decide(t, "9\nx\n1\n")

	assert.Equal(t, resolve.Select("gracias"), d)
	assert.Equal(t, 2, strings.Count(out, "Enter a suggestion number"))
}

func TestPrompt_Keep(t *testing.T) {
	d, out := decide(t, "k\ndespedida\nabc\n-1\n")

	assert.Equal(t, resolve.KeepNew("despedida", -1), d)
	assert.Contains(t, out, "Existing categories: despedida, saludo")
	assert.Contains(t, out, "Not an integer.")
}

func TestPrompt_KeepWithheld(t *testing.T) {
	d, _ := decide(t, "k\n\n")
	assert.Equal(t, resolve.DecisionKeep, d.Kind)
	assert.Empty(t, d.Category)

	d, _ = decide(t, "k\ntramite\n\n")
	assert.Equal(t, "tramite", d.Category)
	assert.Nil(t, d.Weight)
}

func TestPrompt_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPrompt(strings.NewReader("1\n"), &bytes.Buffer{}).Decide(ctx, promptQuery)
	assert.ErrorIs(t, err, context.Canceled)
}
