package similarity

import (
	"sort"
	"strings"
)

// Defaults for Options.
const (
	DefaultThreshold = 2
	DefaultMax       = 5
)

// Options bounds the suggestion list.
type Options struct {
	// Threshold is the largest combined distance a suggestion may have.
	Threshold int
	// Max caps the number of suggestions returned.
	Max int
}

// DefaultOptions returns threshold 2, at most 5 suggestions.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, Max: DefaultMax}
}

func (o Options) normalized() Options {
	if o.Threshold < 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Max <= 0 {
		o.Max = DefaultMax
	}
	return o
}

// Suggestion is a candidate lexeme with its combined distance.
type Suggestion struct {
	Word     string `json:"word"`
	Distance int    `json:"distance"`
}

// Rank scores every key against word and returns those within the threshold,
// closest first. Equal distances keep the order of keys.
func Rank(word string, keys []string, opts Options) []Suggestion {
	opts = opts.normalized()
	w := strings.ToLower(word)

	var out []Suggestion
	for _, k := range keys {
		d := Distance(w, strings.ToLower(k))
		if d <= opts.Threshold {
			out = append(out, Suggestion{Word: k, Distance: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Distance < out[j].Distance
	})

	if len(out) > opts.Max {
		out = out[:opts.Max]
	}
	return out
}

// Suggest returns the words of Rank.
func Suggest(word string, keys []string, opts Options) []string {
	ranked := Rank(word, keys, opts)
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.Word
	}
	return out
}
