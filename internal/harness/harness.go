package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/roach88/callcheck/internal/config"
	"github.com/roach88/callcheck/internal/engine"
	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/model"
	"github.com/roach88/callcheck/internal/oracle"
	"github.com/roach88/callcheck/internal/report"
	"github.com/roach88/callcheck/internal/resolve"
	"github.com/roach88/callcheck/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Analysis is the engine's output.
	Analysis *model.Analysis `json:"analysis"`

	// Report is the rendered text report, the unit of golden comparison.
	Report string `json:"report"`

	// Queries are the oracle queries in the order they were asked.
	Queries []resolve.Query `json:"-"`
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Option configures a scenario run.
type Option func(*runSettings)

type runSettings struct {
	cfg    *config.Config
	logger *zap.Logger
}

// WithConfig runs the scenario with cfg instead of config.Default(). Only
// the analysis settings are used; the lexicon path and oracle kind are
// ignored.
func WithConfig(cfg *config.Config) Option {
	return func(s *runSettings) { s.cfg = cfg }
}

// WithLogger sets the logger handed to the engine.
func WithLogger(logger *zap.Logger) Option {
	return func(s *runSettings) { s.logger = logger }
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh lexicon file in a temporary directory
// that is removed afterwards.
//
// Execution flow:
// 1. Create the lexicon and apply the scenario's entries or the default seed
// 2. Build a scripted oracle from the scenario's answers
// 3. Process the transcript with a fixed run ID
// 4. Render the report and evaluate assertions
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	settings := runSettings{cfg: config.Default(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&settings)
	}

	dir, err := os.MkdirTemp("", "callcheck-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := lexicon.Open(filepath.Join(dir, "lexicon.db"), lexicon.WithDriver(settings.cfg.Lexicon.Driver))
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	if err := seed(ctx, st, scenario.Lexicon); err != nil {
		return nil, err
	}

	script, err := oracle.NewScript(oracle.ScriptDoc{Default: scenario.AnswerDefault, Answers: scenario.Answers})
	if err != nil {
		return nil, fmt.Errorf("invalid answers: %w", err)
	}

	analyzer := engine.New(st, script, settings.cfg,
		engine.WithLogger(settings.logger),
		engine.WithRunIDGenerator(testutil.NewFixedRunIDGenerator(scenario.RunID)),
	)
	analysis, err := analyzer.Process(ctx, scenario.Transcript)
	if err != nil {
		return nil, fmt.Errorf("failed to process transcript: %w", err)
	}

	result := &Result{
		Pass:     true,
		Errors:   []string{},
		Analysis: analysis,
		Report:   report.Build(analysis),
		Queries:  script.Queries(),
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, st) {
		result.AddError(msg)
	}
	return result, nil
}

func seed(ctx context.Context, st *lexicon.Store, entries []lexicon.Entry) error {
	if len(entries) == 0 {
		if _, err := st.Initialize(ctx, lexicon.DefaultSeed()); err != nil {
			return fmt.Errorf("failed to seed lexicon: %w", err)
		}
		return nil
	}
	for _, e := range entries {
		if _, err := st.Insert(ctx, e.Lexeme, e.Category, e.Weight); err != nil {
			return fmt.Errorf("failed to load lexicon entry %q: %w", e.Lexeme, err)
		}
	}
	return nil
}
