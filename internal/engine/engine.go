package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/callcheck/internal/config"
	"github.com/roach88/callcheck/internal/model"
	"github.com/roach88/callcheck/internal/protocol"
	"github.com/roach88/callcheck/internal/resolve"
	"github.com/roach88/callcheck/internal/sentiment"
	"github.com/roach88/callcheck/internal/tokenize"
	"github.com/roach88/callcheck/internal/transcript"
)

// ErrEmptyInput is returned by Process for a blank transcript.
var ErrEmptyInput = errors.New("empty transcript")

// Analyzer processes conversations against one lexicon and oracle.
//
// An Analyzer is not safe for concurrent use: it drives an oracle that may
// be an interactive operator.
type Analyzer struct {
	segmenter *transcript.Segmenter
	tokenizer *tokenize.Tokenizer
	checker   *protocol.Checker
	runIDs    RunIDGenerator
	logger    *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used by the analyzer and its resolver.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRunIDGenerator replaces the UUIDv7 run ID generator.
func WithRunIDGenerator(gen RunIDGenerator) Option {
	return func(a *Analyzer) {
		if gen != nil {
			a.runIDs = gen
		}
	}
}

// New creates an Analyzer. A nil cfg uses config.Default().
func New(lex resolve.Lexicon, oracle resolve.Oracle, cfg *config.Config, opts ...Option) *Analyzer {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &Analyzer{
		runIDs: UUIDv7Generator{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	resolver := resolve.New(lex, oracle,
		resolve.WithSimilarity(cfg.SimilarityOptions()),
		resolve.WithLogger(a.logger.Named("resolve")),
	)
	a.segmenter = transcript.NewSegmenter(cfg.Labels())
	a.tokenizer = tokenize.New(lex, resolver)
	a.checker = protocol.NewChecker(cfg.Protocol)
	return a
}

// Process analyzes one transcript.
//
// Malformed fragments are dropped and unknown words end up unresolved; the
// only errors are blank input and cancellation of ctx between turns.
func (a *Analyzer) Process(ctx context.Context, text string) (*model.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	segments, dropped := a.segmenter.Segment(text)
	if dropped > 0 {
		a.logger.Debug("dropped malformed transcript fragments", zap.Int("count", dropped))
	}

	an := &model.Analysis{
		RunID:       a.runIDs.Generate(),
		Turns:       make([]model.Turn, 0, len(segments)),
		Corrections: []model.Correction{},
		Unresolved:  []string{},
	}
	logger := a.logger.With(zap.String("run_id", an.RunID))

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("process turn %d: %w", seg.Index, err)
		}

		res := a.tokenizer.Tokenize(ctx, seg.Text)
		an.Turns = append(an.Turns, model.Turn{
			Index:   seg.Index,
			Speaker: seg.Speaker,
			Text:    seg.Text,
			Tokens:  res.Tokens,
		})
		an.Corrections = append(an.Corrections, res.Corrections...)
		an.Unresolved = append(an.Unresolved, res.Unresolved...)
	}

	agent := an.Tokens(model.SpeakerAgent)
	an.Agent = verdict(agent)
	an.Customer = verdict(an.Tokens(model.SpeakerCustomer))
	an.Overall = verdict(an.AllTokens())
	if len(agent) > 0 {
		an.Protocol = a.checker.Check(model.SpeakerAgent, agent)
	}

	logger.Info("conversation analyzed",
		zap.Int("turns", len(an.Turns)),
		zap.Int("corrections", len(an.Corrections)),
		zap.Int("unresolved", len(an.Unresolved)),
		zap.Bool("protocol_passed", an.Protocol.Passed()),
	)
	return an, nil
}

func verdict(tokens []model.Token) *model.Verdict {
	if len(tokens) == 0 {
		return nil
	}
	v := sentiment.Analyze(tokens)
	return &v
}
