package oracle

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/roach88/callcheck/internal/lexicon"
	"github.com/roach88/callcheck/internal/resolve"
)

// Prompt asks an operator through a line-oriented terminal dialog.
type Prompt struct {
	in  *bufio.Scanner
	out io.Writer

	title  lipgloss.Style
	option lipgloss.Style
	muted  lipgloss.Style
}

// NewPrompt creates a Prompt reading answers from in and writing questions to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	r := lipgloss.NewRenderer(out)
	return &Prompt{
		in:  bufio.NewScanner(in),
		out: out,
		title: r.NewStyle().
			Foreground(lipgloss.Color("#f5a623")).
			Bold(true),
		option: r.NewStyle().
			Foreground(lipgloss.Color("#7aa2f7")),
		muted: r.NewStyle().
			Foreground(lipgloss.Color("#6b7280")).
			Italic(true),
	}
}

// Decide shows the word with its suggestions and reads the operator's choice.
//
// A number or a suggestion selects it, "k" keeps the word as new, and "c" or
// a blank line cancels. End of input cancels.
func (p *Prompt) Decide(ctx context.Context, q resolve.Query) (resolve.Decision, error) {
	fmt.Fprintln(p.out, p.title.Render(fmt.Sprintf("Unknown word: %q", q.Word)))
	for i, s := range q.Suggestions {
		fmt.Fprintf(p.out, "  %s %s\n", p.option.Render(strconv.Itoa(i+1)+")"), s)
	}
	fmt.Fprintf(p.out, "  %s keep as new word\n", p.option.Render("k)"))
	fmt.Fprintf(p.out, "  %s cancel\n", p.option.Render("c)"))

	for {
		if err := ctx.Err(); err != nil {
			return resolve.Decision{}, err
		}
		line, ok := p.ask("> ")
		if !ok {
			return resolve.Cancel(), nil
		}

		switch choice := lexicon.Fold(line); {
		case choice == "" || choice == "c":
			return resolve.Cancel(), nil
		case choice == "k":
			return p.keep(q), nil
		default:
			if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(q.Suggestions) {
				return resolve.Select(q.Suggestions[n-1]), nil
			}
			for _, s := range q.Suggestions {
				if s == choice {
					return resolve.Select(s), nil
				}
			}
			fmt.Fprintln(p.out, p.muted.Render("Enter a suggestion number, k or c."))
		}
	}
}

func (p *Prompt) keep(q resolve.Query) resolve.Decision {
	d := resolve.Decision{Kind: resolve.DecisionKeep}

	if len(q.Categories) > 0 {
		fmt.Fprintln(p.out, p.muted.Render("Existing categories: "+strings.Join(q.Categories, ", ")))
	}
	category, ok := p.ask(fmt.Sprintf("Category for %q: ", q.Word))
	if !ok || category == "" {
		return d
	}
	d.Category = category

	for {
		raw, ok := p.ask(fmt.Sprintf("Sentiment weight for %q (negative or positive integer): ", q.Word))
		if !ok || raw == "" {
			return d
		}
		w, err := strconv.Atoi(raw)
		if err == nil {
			d.Weight = &w
			return d
		}
		fmt.Fprintln(p.out, p.muted.Render("Not an integer."))
	}
}

func (p *Prompt) ask(question string) (string, bool) {
	fmt.Fprint(p.out, question)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}
