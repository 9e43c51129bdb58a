package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/similarity"
)

// SuggestResult is the JSON payload of the suggest command.
type SuggestResult struct {
	Word        string                  `json:"word"`
	Known       bool                    `json:"known"`
	Suggestions []similarity.Suggestion `json:"suggestions"`
}

// NewSuggestCommand creates the suggest command.
func NewSuggestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LexiconOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "suggest <word>",
		Short: "Show the lexicon words closest to a word",
		Long: `Rank lexicon entries by their distance to a word, the same list the
oracle is shown for an unknown word. Distance is the smaller of the edit
distance and the position-wise mismatch count.`,
		Example: `  callcheck suggest grasias`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.formatter(cmd)
			cfg := opts.settings()

			st, err := openLexicon(cmd.Context(), cfg, opts.logger())
			if err != nil {
				return err
			}
			defer st.Close()

			word := lexicon.Fold(args[0])
			_, known := st.Lookup(word)
			res := SuggestResult{
				Word:        word,
				Known:       known,
				Suggestions: similarity.Rank(word, st.Keys(), cfg.SimilarityOptions()),
			}
			if res.Suggestions == nil {
				res.Suggestions = []similarity.Suggestion{}
			}

			var sb strings.Builder
			if known {
				fmt.Fprintf(&sb, "%s is in the lexicon\n", word)
			}
			if len(res.Suggestions) == 0 {
				fmt.Fprintf(&sb, "No suggestions for %s\n", word)
			}
			for i, s := range res.Suggestions {
				fmt.Fprintf(&sb, "%d. %s (distance %d)\n", i+1, s.Word, s.Distance)
			}
			return f.Success(res, sb.String())
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "lexicon database path (overrides config)")
	return cmd
}
