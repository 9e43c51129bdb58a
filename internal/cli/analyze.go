package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/callcheck/internal/config"
	"github.com/roach88/callcheck/internal/engine"
	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/oracle"
	"github.com/roach88/callcheck/internal/report"
	"github.com/roach88/callcheck/internal/resolve"
)

// AnalyzeOptions holds flags for the analyze command.
type AnalyzeOptions struct {
	*RootOptions
	DBPath     string
	Oracle     string
	ScriptPath string
	OutPath    string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalyzeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <transcript-file>",
		Short: "Analyze a conversation transcript",
		Long: `Analyze a transcript made of "Agent:" and "Customer:" turns.

Every word is classified against the lexicon. Unknown words go through the
configured oracle, which may pick a suggestion or register the word.
The report covers per-speaker sentiment, the agent protocol check,
corrections and unresolved words.

Oracles:
  reject  never resolve unknown words (default)
  script  answer from a YAML script (--script)
  prompt  ask on the terminal
  llm     ask an OpenAI model (needs OPENAI_API_KEY)`,
		Example: `  # Analyze with the default lexicon
  callcheck analyze call.txt

  # Resolve unknown words interactively and save the report
  callcheck analyze call.txt --oracle prompt --out call.report

  # JSON output
  callcheck analyze call.txt --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "lexicon database path (overrides config)")
	cmd.Flags().StringVar(&opts.Oracle, "oracle", "", "oracle kind: reject|script|prompt|llm (overrides config)")
	cmd.Flags().StringVar(&opts.ScriptPath, "script", "", "oracle script file (implies --oracle script)")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "also write the text report to this file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions, path string) error {
	f := opts.formatter(cmd)
	cfg := *opts.config()
	logger := opts.logger()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return WrapExitError(ExitCommandError, ErrCodeNotFound, "transcript not found", err)
		}
		return WrapExitError(ExitCommandError, ErrCodeGeneric, "failed to read transcript", err)
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return NewExitError(ExitCommandError, ErrCodeInvalidInput, "transcript is empty")
	}

	if opts.DBPath != "" {
		cfg.Lexicon.Path = opts.DBPath
	}
	if opts.ScriptPath != "" {
		cfg.Oracle.Script = opts.ScriptPath
		if opts.Oracle == "" {
			cfg.Oracle.Kind = config.OracleScript
		}
	}
	if opts.Oracle != "" {
		cfg.Oracle.Kind = opts.Oracle
	}

	orc, err := newOracle(&cfg, opts.input(), cmd.ErrOrStderr(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openLexicon(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	analyzer := engine.New(st, orc, &cfg, engine.WithLogger(logger))
	analysis, err := analyzer.Process(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return WrapExitError(ExitFailure, ErrCodeGeneric, "analysis interrupted", err)
		}
		return WrapExitError(ExitCommandError, ErrCodeInvalidInput, "failed to analyze transcript", err)
	}

	rendered := report.Build(analysis)
	if opts.OutPath != "" {
		if err := os.WriteFile(opts.OutPath, []byte(rendered), 0o644); err != nil {
			return WrapExitError(ExitCommandError, ErrCodeGeneric, "failed to write report", err)
		}
		logger.Debug("report written", zap.String("path", opts.OutPath))
	}

	return f.Success(analysis, rendered)
}

// openLexicon opens the configured store and applies the default seed on
// first use.
func openLexicon(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*lexicon.Store, error) {
	st, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	if _, err := st.Initialize(ctx, lexicon.DefaultSeed()); err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, ErrCodeStorage, "failed to seed lexicon", err)
	}
	return st, nil
}

func openStore(cfg *config.Config, logger *zap.Logger) (*lexicon.Store, error) {
	st, err := lexicon.Open(cfg.Lexicon.Path,
		lexicon.WithDriver(cfg.Lexicon.Driver),
		lexicon.WithLogger(logger),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeStorage, "failed to open lexicon", err)
	}
	return st, nil
}

// newOracle builds the oracle named by cfg.Oracle.Kind.
// The prompt oracle reads in and writes its questions to out.
func newOracle(cfg *config.Config, in io.Reader, out io.Writer, logger *zap.Logger) (resolve.Oracle, error) {
	switch cfg.Oracle.Kind {
	case "", config.OracleReject:
		return oracle.Reject{}, nil
	case config.OracleScript:
		if cfg.Oracle.Script == "" {
			return nil, NewExitError(ExitCommandError, ErrCodeConfig, "script oracle needs --script")
		}
		s, err := oracle.LoadScript(cfg.Oracle.Script)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, ErrCodeConfig, "failed to load oracle script", err)
		}
		return s, nil
	case config.OraclePrompt:
		return oracle.NewPrompt(in, out), nil
	case config.OracleLLM:
		if cfg.Oracle.APIKey == "" {
			return nil, WrapExitError(ExitCommandError, ErrCodeConfig, "llm oracle unavailable", config.ErrMissingAPIKey)
		}
		return oracle.NewOpenAILLM(cfg.Oracle.APIKey, cfg.Oracle.Model, oracle.WithLLMLogger(logger)), nil
	default:
		return nil, NewExitError(ExitCommandError, ErrCodeConfig,
			fmt.Sprintf("unknown oracle %q: must be one of reject, script, prompt, llm", cfg.Oracle.Kind))
	}
}
