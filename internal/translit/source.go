package translit

import "context"

// Source produces Odia candidates for a Latin-script word. Sources are
// consulted in order and their results merged with duplicates removed,
// so a source returns only what it is confident about and stays silent
// otherwise.
type Source interface {
	Suggest(ctx context.Context, word string) []string
}
