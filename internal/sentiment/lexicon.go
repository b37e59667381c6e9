package sentiment

import (
	"strings"
	"unicode"
)

// valences maps lower-case words to polarity weights, AFINN-style.
// Weights range from -3 (strongly negative) to +3 (strongly positive).
var valences = map[string]int{
	// positive
	"amazing":     3,
	"awesome":     3,
	"excellent":   3,
	"fantastic":   3,
	"love":        3,
	"outstanding": 3,
	"perfect":     3,
	"best":        2,
	"great":       2,
	"happy":       2,
	"impressive":  2,
	"recommend":   2,
	"reliable":    2,
	"smooth":      2,
	"wonderful":   2,
	"worth":       2,
	"decent":      1,
	"fast":        1,
	"fine":        1,
	"good":        1,
	"helpful":     1,
	"improved":    1,
	"like":        1,
	"nice":        1,
	"solid":       1,
	"useful":      1,

	// negative
	"awful":         -3,
	"horrible":      -3,
	"scam":          -3,
	"terrible":      -3,
	"unusable":      -3,
	"worst":         -3,
	"bad":           -2,
	"broken":        -2,
	"disappointed":  -2,
	"disappointing": -2,
	"hate":          -2,
	"overpriced":    -2,
	"poor":          -2,
	"refund":        -2,
	"unreliable":    -2,
	"useless":       -2,
	"annoying":      -1,
	"buggy":         -1,
	"confusing":     -1,
	"delayed":       -1,
	"expensive":     -1,
	"issue":         -1,
	"late":          -1,
	"problem":       -1,
	"slow":          -1,
	"wrong":         -1,
}

// Score sums the lexicon valences of every word in text. Unknown words
// contribute nothing, so text with no lexicon hits scores zero.
func Score(text string) int {
	total := 0
	for _, word := range splitWords(text) {
		total += valences[word]
	}
	return total
}

func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
