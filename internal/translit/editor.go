package translit

import (
	"context"
	"slices"
	"strings"
	"unicode"
)

// Span is an inclusive-exclusive rune range [Start, End) within a buffer.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Word is the token under the caret together with its position.
type Word struct {
	Text string `json:"text"`
	Span
}

// CurrentWord finds the whitespace-delimited token containing the caret.
// A caret sitting at either edge of a token still selects it, so caret
// positions are rune indices into text. Returns false when the caret is
// inside a whitespace run or the buffer is empty there.
func CurrentWord(text string, caret int) (Word, bool) {
	runes := []rune(text)
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}

	isSpace := func(i int) bool { return unicode.IsSpace(runes[i]) }

	start := caret
	for start > 0 && !isSpace(start-1) {
		start--
	}
	end := caret
	for end < len(runes) && !isSpace(end) {
		end++
	}
	if start == end {
		return Word{}, false
	}
	return Word{
		Text: string(runes[start:end]),
		Span: Span{Start: start, End: end},
	}, true
}

// Editor is a rune-addressed text buffer with a caret and live
// suggestions for the word under the caret. Typing never rewrites
// anything beyond the keystroke itself; the buffer only changes further
// when a suggestion is explicitly accepted.
type Editor struct {
	engine *Engine

	buffer  []rune
	caret   int
	word    Word
	hasWord bool
	pending []string
}

// NewEditor creates an editor over the given suggestion engine.
func NewEditor(engine *Engine) *Editor {
	return &Editor{engine: engine}
}

// SetText replaces the buffer and moves the caret to the end.
func (e *Editor) SetText(ctx context.Context, text string) {
	e.buffer = []rune(text)
	e.caret = len(e.buffer)
	e.refresh(ctx)
}

// Text returns the buffer contents.
func (e *Editor) Text() string { return string(e.buffer) }

// Caret returns the caret position in runes.
func (e *Editor) Caret() int { return e.caret }

// Suggestions returns the current candidates for the word under the caret.
func (e *Editor) Suggestions() []string { return e.pending }

// Word returns the word under the caret, if any.
func (e *Editor) Word() (Word, bool) { return e.word, e.hasWord }

// Insert types s at the caret.
func (e *Editor) Insert(ctx context.Context, s string) {
	ins := []rune(s)
	e.buffer = slices.Insert(e.buffer, e.caret, ins...)
	e.caret += len(ins)
	e.refresh(ctx)
}

// Backspace deletes the rune before the caret.
func (e *Editor) Backspace(ctx context.Context) {
	if e.caret == 0 {
		return
	}
	e.buffer = slices.Delete(e.buffer, e.caret-1, e.caret)
	e.caret--
	e.refresh(ctx)
}

// SetCaret moves the caret, clamped to the buffer.
func (e *Editor) SetCaret(ctx context.Context, pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(e.buffer) {
		pos = len(e.buffer)
	}
	e.caret = pos
	e.refresh(ctx)
}

// Accept replaces the word under the caret with suggestion i and moves
// the caret to the end of the replacement.
func (e *Editor) Accept(ctx context.Context, i int) bool {
	if !e.hasWord || i < 0 || i >= len(e.pending) {
		return false
	}
	replacement := []rune(e.pending[i])
	e.buffer = slices.Replace(e.buffer, e.word.Start, e.word.End, replacement...)
	e.caret = e.word.Start + len(replacement)
	e.refresh(ctx)
	return true
}

// Dismiss clears the current suggestions without touching the buffer.
func (e *Editor) Dismiss() {
	e.pending = nil
}

func (e *Editor) refresh(ctx context.Context) {
	e.word, e.hasWord = CurrentWord(string(e.buffer), e.caret)
	if !e.hasWord {
		e.pending = nil
		return
	}
	// a word already fully in Odia needs no further conversion
	if strings.TrimSpace(e.word.Text) == "" || ContainsOdia(e.word.Text) {
		e.pending = nil
		return
	}
	e.pending = e.engine.Suggest(ctx, e.word.Text)
}
