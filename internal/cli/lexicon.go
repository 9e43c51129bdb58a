package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/callcheck/internal/config"
	"github.com/roach88/callcheck/internal/lexicon"
)

// LexiconOptions holds flags shared by the lexicon subcommands.
type LexiconOptions struct {
	*RootOptions
	DBPath string
}

// NewLexiconCommand creates the lexicon command group.
func NewLexiconCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LexiconOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect and edit the lexicon store",
		Long: `Inspect and edit the persistent lexicon.

Entries are stored case-folded. A lexeme is registered at most once;
adding an existing lexeme fails and leaves the stored entry untouched.`,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "lexicon database path (overrides config)")

	cmd.AddCommand(newLexiconInitCommand(opts))
	cmd.AddCommand(newLexiconAddCommand(opts))
	cmd.AddCommand(newLexiconLookupCommand(opts))
	cmd.AddCommand(newLexiconListCommand(opts))

	return cmd
}

func (o *LexiconOptions) settings() *config.Config {
	cfg := *o.config()
	if o.DBPath != "" {
		cfg.Lexicon.Path = o.DBPath
	}
	return &cfg
}

func (o *LexiconOptions) open(cmd *cobra.Command) (*lexicon.Store, error) {
	return openLexicon(cmd.Context(), o.settings(), o.logger())
}

// LexiconInitResult is the JSON payload of lexicon init.
type LexiconInitResult struct {
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

func newLexiconInitCommand(opts *LexiconOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the lexicon and apply the default seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			st, err := openStore(opts.settings(), opts.logger())
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Initialize(cmd.Context(), lexicon.DefaultSeed())
			if err != nil {
				return WrapExitError(ExitCommandError, ErrCodeStorage, "failed to seed lexicon", err)
			}
			res := LexiconInitResult{Inserted: n, Total: st.Len()}
			return f.Success(res, fmt.Sprintf("Lexicon ready: %d entries (%d seeded)\n", res.Total, res.Inserted))
		},
	}
}

func newLexiconAddCommand(opts *LexiconOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <lexeme> <category> <weight>",
		Short: "Register a new lexeme",
		Example: `  callcheck lexicon add genial positivo 2
  callcheck lexicon add pésimo negativo -3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)

			weight, err := strconv.Atoi(args[2])
			if err != nil {
				return NewExitError(ExitCommandError, ErrCodeInvalidInput,
					fmt.Sprintf("weight %q is not an integer", args[2]))
			}

			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			e, err := st.Insert(cmd.Context(), args[0], args[1], weight)
			switch {
			case lexicon.IsDuplicate(err):
				return WrapExitError(ExitFailure, ErrCodeDuplicate, "lexeme already registered", err)
			case errors.Is(err, lexicon.ErrInvalidEntry):
				return WrapExitError(ExitCommandError, ErrCodeInvalidInput, "invalid entry", err)
			case err != nil:
				return WrapExitError(ExitCommandError, ErrCodeStorage, "failed to add lexeme", err)
			}

			return f.Success(e, fmt.Sprintf("Added %s\n", formatEntry(e)))
		},
	}
}

func newLexiconLookupCommand(opts *LexiconOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <lexeme>",
		Short: "Show the entry for a lexeme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			e, ok := st.Lookup(args[0])
			if !ok {
				return NewExitError(ExitFailure, ErrCodeNotFound,
					fmt.Sprintf("lexeme %q not found", lexicon.Fold(args[0])))
			}
			return f.Success(e, formatEntry(e)+"\n")
		},
	}
}

func newLexiconListCommand(opts *LexiconOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List lexicon entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			entries := make([]lexicon.Entry, 0, st.Len())
			want := lexicon.Fold(category)
			for _, e := range st.Entries() {
				if want == "" || e.Category == want {
					entries = append(entries, e)
				}
			}

			var sb strings.Builder
			for _, e := range entries {
				sb.WriteString(formatEntry(e))
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "%d entries\n", len(entries))
			return f.Success(entries, sb.String())
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list entries of this category")
	return cmd
}

func formatEntry(e lexicon.Entry) string {
	return fmt.Sprintf("%s\t%s\t%d", e.Lexeme, e.Category, e.Weight)
}
