package translit

import (
	"context"
	"strings"
)

// consonantPair is a romanization whose dental and retroflex readings are
// distinct Odia letters. The capitalized key selects the retroflex form.
type consonantPair struct {
	root      string // lowercase romanization
	dental    string
	retroflex string
}

var consonantPairs = []consonantPair{
	{"ta", "ତ", "ଟ"},
	{"tha", "ଥ", "ଠ"},
	{"da", "ଦ", "ଡ"},
	{"dha", "ଧ", "ଢ"},
	{"na", "ନ", "ଣ"},
	{"la", "ଲ", "ଳ"},
	{"sa", "ସ", "ଷ"},
}

// PairSource suggests both readings of an ambiguous dental/retroflex
// consonant. A capitalized first letter asks for the retroflex reading,
// so that form leads; otherwise the dental form leads.
type PairSource struct{}

func (PairSource) Suggest(ctx context.Context, word string) []string {
	for _, p := range consonantPairs {
		if word == capitalizeFirst(p.root) {
			return []string{p.retroflex, p.dental}
		}
		if strings.ToLower(word) == p.root {
			return []string{p.dental, p.retroflex}
		}
	}
	return nil
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

var _ Source = PairSource{}
