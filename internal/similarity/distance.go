// Package similarity ranks known lexemes by closeness to an unrecognized word.
//
// Two distances are combined: Levenshtein edit distance and a positional
// (Hamming-style) distance over blank-padded strings. Both operate on runes.
package similarity

// EditDistance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions and substitutions that turn one
// into the other.
func EditDistance(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	// Keep the row over the shorter string.
	if len(s1) < len(s2) {
		s1, s2 = s2, s1
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, c1 := range s1 {
		curr[0] = i + 1
		for j, c2 := range s2 {
			cost := 1
			if c1 == c2 {
				cost = 0
			}
			curr[j+1] = min(
				prev[j+1]+1, // deletion
				curr[j]+1,   // insertion
				prev[j]+cost,
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}

// PositionalDistance pads the shorter of a and b with trailing blanks and
// counts the positions where the runes differ.
//
// This is not a metric: a word ending in blanks compares equal to its
// unpadded form.
func PositionalDistance(a, b string) int {
	s1, s2 := []rune(a), []rune(b)
	n := max(len(s1), len(s2))

	d := 0
	for i := 0; i < n; i++ {
		if runeAt(s1, i) != runeAt(s2, i) {
			d++
		}
	}
	return d
}

func runeAt(s []rune, i int) rune {
	if i < len(s) {
		return s[i]
	}
	return ' '
}

// Distance is the combined score used for suggestions.
func Distance(a, b string) int {
	return min(EditDistance(a, b), PositionalDistance(a, b))
}
