package translit

import "context"

const maxSuggestions = 8

// Engine merges suggestion sources in priority order. The remote source,
// when present, leads; local sources fill in behind it. Duplicates are
// dropped while keeping first-seen order, and the list is capped.
type Engine struct {
	remote Source
	local  []Source
	max    int
}

// NewEngine builds an engine over the local sources. remote may be nil
// for fully offline operation.
func NewEngine(remote Source) *Engine {
	return &Engine{
		remote: remote,
		local:  []Source{PairSource{}, LexiconSource{}, VariantSource{}},
		max:    maxSuggestions,
	}
}

// Suggest returns Odia candidates for one Latin-script word. Empty words
// and words already containing Odia script produce no suggestions. The
// remote service is only consulted for words of at least two runes.
func (e *Engine) Suggest(ctx context.Context, word string) []string {
	if word == "" || ContainsOdia(word) {
		return nil
	}

	seen := map[string]struct{}{}
	var out []string
	merge := func(candidates []string) {
		for _, c := range candidates {
			if c == "" {
				continue
			}
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	if e.remote != nil && len([]rune(word)) >= 2 {
		merge(e.remote.Suggest(ctx, word))
	}
	for _, src := range e.local {
		merge(src.Suggest(ctx, word))
	}

	if len(out) > e.max {
		out = out[:e.max]
	}
	return out
}

// ContainsOdia reports whether s has any rune in the Odia Unicode block.
func ContainsOdia(s string) bool {
	for _, r := range s {
		if r >= 0x0B00 && r <= 0x0B7F {
			return true
		}
	}
	return false
}
