package translit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentWord(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		caret    int
		want     string
		start    int
		end      int
		hasMatch bool
	}{
		{"middle of word", "mu bhala achi", 5, "bhala", 3, 8, true},
		{"start of word", "mu bhala achi", 3, "bhala", 3, 8, true},
		{"end of word", "mu bhala achi", 8, "bhala", 3, 8, true},
		{"first word", "mu bhala achi", 1, "mu", 0, 2, true},
		{"last word at end", "mu bhala achi", 13, "achi", 9, 13, true},
		{"empty text", "", 0, "", 0, 0, false},
		{"inside whitespace run", "a  b", 2, "", 0, 0, false},
		{"caret clamped past end", "mu", 99, "mu", 0, 2, true},
		{"odia text", "ମୁଁ ଭଲ", 5, "ଭଲ", 4, 6, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, ok := CurrentWord(tc.text, tc.caret)
			require.Equal(t, tc.hasMatch, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.want, w.Text)
			assert.Equal(t, tc.start, w.Start)
			assert.Equal(t, tc.end, w.End)
		})
	}
}

func TestEditorTypingKeepsSuggestionsLive(t *testing.T) {
	ctx := context.Background()
	ed := NewEditor(NewEngine(nil))

	ed.Insert(ctx, "n")
	ed.Insert(ctx, "a")

	assert.Equal(t, "na", ed.Text())
	w, ok := ed.Word()
	require.True(t, ok)
	assert.Equal(t, "na", w.Text)
	assert.Equal(t, []string{"ନ", "ଣ"}, ed.Suggestions())
}

func TestEditorAcceptReplacesOnlyCurrentWord(t *testing.T) {
	ctx := context.Background()
	ed := NewEditor(NewEngine(nil))

	ed.SetText(ctx, "mu bhala na")
	require.Equal(t, []string{"ନ", "ଣ"}, ed.Suggestions())

	ok := ed.Accept(ctx, 1)
	require.True(t, ok)
	assert.Equal(t, "mu bhala ଣ", ed.Text())
	assert.Equal(t, len([]rune("mu bhala ଣ")), ed.Caret(), "caret lands after the replacement")
	assert.Empty(t, ed.Suggestions(), "converted word offers no further candidates")
}

func TestEditorAcceptMidBuffer(t *testing.T) {
	ctx := context.Background()
	ed := NewEditor(NewEngine(nil))

	ed.SetText(ctx, "na bhala")
	ed.SetCaret(ctx, 1)

	w, ok := ed.Word()
	require.True(t, ok)
	require.Equal(t, "na", w.Text)

	require.True(t, ed.Accept(ctx, 0))
	assert.Equal(t, "ନ bhala", ed.Text())
	assert.Equal(t, 1, ed.Caret())
}

func TestEditorDismissKeepsBuffer(t *testing.T) {
	ctx := context.Background()
	ed := NewEditor(NewEngine(nil))

	ed.SetText(ctx, "na")
	require.NotEmpty(t, ed.Suggestions())

	ed.Dismiss()
	assert.Empty(t, ed.Suggestions())
	assert.Equal(t, "na", ed.Text(), "dismiss never touches the text")
}

func TestEditorBackspace(t *testing.T) {
	ctx := context.Background()
	ed := NewEditor(NewEngine(nil))

	ed.SetText(ctx, "nab")
	ed.Backspace(ctx)

	assert.Equal(t, "na", ed.Text())
	assert.Equal(t, []string{"ନ", "ଣ"}, ed.Suggestions())

	ed.Backspace(ctx)
	ed.Backspace(ctx)
	assert.Equal(t, "", ed.Text())
	ed.Backspace(ctx) // at origin, no-op
	assert.Equal(t, 0, ed.Caret())
}

func TestEditorAcceptOutOfRange(t *testing.T) {
	ctx := context.Background()
	ed := NewEditor(NewEngine(nil))

	ed.SetText(ctx, "na")
	assert.False(t, ed.Accept(ctx, -1))
	assert.False(t, ed.Accept(ctx, 99))
	assert.Equal(t, "na", ed.Text())
}
