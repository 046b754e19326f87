package translit

import (
	"context"
	"strings"
)

// wordMap holds curated romanization-to-Odia mappings: common words,
// standalone consonants, and vowels. Capitalized keys are the retroflex
// readings of letters that also have a dental form.
var wordMap = map[string]string{
	// common words and greetings
	"namaskara":  "ନମସ୍କାର",
	"namaskar":   "ନମସ୍କାର",
	"namaskaara": "ନମସ୍କାର",
	"bhala":      "ଭଲ",
	"bhalo":      "ଭଲ",
	"dhanyabad":  "ଧନ୍ୟବାଦ",
	"dhanyabada": "ଧନ୍ୟବାଦ",
	"kemiti":     "କେମିତି",
	"kemite":     "କେମିତି",
	"aachen":     "ଆଛେନ୍",
	"achhen":     "ଆଛେନ୍",

	// pronouns
	"mu":    "ମୁଁ",
	"mun":   "ମୁଁ",
	"ami":   "ଆମି",
	"tume":  "ତୁମେ",
	"tumhe": "ତୁମେ",
	"tumar": "ତୁମର",
	"se":    "ସେ",
	"sehi":  "ସେହି",
	"taha":  "ତାହା",
	"aame":  "ଆମେ",
	"aamara": "ଆମର",

	// places and everyday nouns
	"ghar":     "ଘର",
	"school":   "ସ୍କୁଲ",
	"college":  "କଲେଜ",
	"office":   "ଅଫିସ",
	"hospital": "ହସପିଟାଲ",
	"market":   "ବଜାର",
	"pani":     "ପାଣି",
	"bhaat":    "ଭାତ",
	"tarkari":  "ତରକାରୀ",

	// consonants, dental readings
	"ka":  "କ",
	"kha": "ଖ",
	"ga":  "ଗ",
	"gha": "ଘ",
	"cha": "ଚ",
	"chha": "ଛ",
	"ja":  "ଜ",
	"jha": "ଝ",
	"ta":  "ତ",
	"tha": "ଥ",
	"da":  "ଦ",
	"dha": "ଧ",
	"na":  "ନ",
	"pa":  "ପ",
	"pha": "ଫ",
	"ba":  "ବ",
	"bha": "ଭ",
	"ma":  "ମ",
	"ya":  "ଯ",
	"ra":  "ର",
	"la":  "ଲ",
	"wa":  "ୱ",
	"sa":  "ସ",
	"ha":  "ହ",
	"ksha": "କ୍ଷ",
	"gya": "ଜ୍ଞ",

	// retroflex readings
	"Ta":  "ଟ",
	"Tha": "ଠ",
	"Da":  "ଡ",
	"Dha": "ଢ",
	"Na":  "ଣ",
	"La":  "ଳ",
	"Sa":  "ଷ",

	// vowels
	"a":  "ଅ",
	"aa": "ଆ",
	"i":  "ଇ",
	"ii": "ଈ",
	"u":  "ଉ",
	"uu": "ଊ",
	"e":  "ଏ",
	"o":  "ଓ",
	"au": "ଔ",
	"ai": "ଐ",
}

// lookup resolves a romanized word against the lexicon, preferring the
// exact spelling so "Na" keeps its retroflex reading before falling back
// to the lowercase entry.
func lookup(word string) (string, bool) {
	if odia, ok := wordMap[word]; ok {
		return odia, true
	}
	odia, ok := wordMap[strings.ToLower(word)]
	return odia, ok
}

// LexiconSource suggests the curated mapping for a word, if one exists.
type LexiconSource struct{}

func (LexiconSource) Suggest(ctx context.Context, word string) []string {
	if odia, ok := lookup(word); ok {
		return []string{odia}
	}
	return nil
}

var _ Source = LexiconSource{}
