package translit

import (
	"context"
	"strings"
)

// clusterSubs are spelling substitutions that map one plausible
// romanization onto another: consonant-cluster variants, sibilant and
// labial swaps, and the dental/retroflex markers.
var clusterSubs = [][2]string{
	{"ksh", "kSh"},
	{"kSh", "ksh"},
	{"gny", "gy"},
	{"gy", "gny"},
	{"ntr", "ntR"},
	{"sth", "stH"},
	{"nta", "nTa"},
	{"nda", "nDa"},
	{"nka", "Nka"},
	{"sha", "sa"},
	{"sa", "sha"},
	{"va", "ba"},
	{"ba", "va"},
	{"ya", "Ya"},
	{"ta", "Ta"},
	{"Ta", "ta"},
	{"tha", "Tha"},
	{"Tha", "tha"},
	{"da", "Da"},
	{"Da", "da"},
	{"dha", "Dha"},
	{"Dha", "dha"},
	{"na", "Na"},
	{"Na", "na"},
	{"la", "La"},
	{"La", "la"},
}

// VariantSource generates alternate spellings of the word and suggests
// the lexicon entries those spellings resolve to. The word's own lexicon
// mapping is skipped since LexiconSource already reports it.
type VariantSource struct{}

func (VariantSource) Suggest(ctx context.Context, word string) []string {
	own, hasOwn := lookup(word)

	var out []string
	add := func(variant string) {
		if variant == word {
			return
		}
		odia, ok := lookup(variant)
		if !ok {
			return
		}
		if hasOwn && odia == own {
			return
		}
		out = append(out, odia)
	}

	for _, sub := range clusterSubs {
		if strings.Contains(word, sub[0]) {
			add(strings.Replace(word, sub[0], sub[1], 1))
		}
	}

	// vowel length variants: double a short vowel when it is not already
	// part of a long one, and shorten doubled vowels
	for _, v := range []byte{'a', 'i', 'u'} {
		add(lengthenVowel(word, v))
		doubled := string([]byte{v, v})
		if strings.Contains(word, doubled) {
			add(strings.Replace(word, doubled, string(v), 1))
		}
	}

	return out
}

// lengthenVowel doubles the first occurrence of v that is not followed by
// another vowel, mirroring spellings like "bhala" -> "bhaala".
func lengthenVowel(word string, v byte) string {
	for i := 0; i < len(word); i++ {
		if word[i] != v {
			continue
		}
		if i+1 < len(word) && isVowel(word[i+1]) {
			continue
		}
		return word[:i+1] + string(v) + word[i+1:]
	}
	return word
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

var _ Source = VariantSource{}
