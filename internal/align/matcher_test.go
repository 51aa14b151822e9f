package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyricsync/internal/config"
)

func wordSeq(probability float64, texts ...string) []CleanWord {
	words := make([]CleanWord, len(texts))
	for i, text := range texts {
		words[i] = CleanWord{
			Text:        text,
			Start:       float64(i),
			End:         float64(i + 1),
			Probability: probability,
		}
	}
	return words
}

func TestTokenEditDistance(t *testing.T) {
	cases := []struct {
		a, b []string
		want int
	}{
		{nil, nil, 0},
		{[]string{"a"}, nil, 1},
		{nil, []string{"a"}, 1},
		{[]string{"hello", "world"}, []string{"hello", "world"}, 0},
		{[]string{"hello", "world"}, []string{"hello"}, 1},
		{[]string{"hello", "world"}, []string{"hello", "word"}, 1},
		{[]string{"a", "b", "c"}, []string{"x", "y", "z"}, 3},
		{[]string{"a", "b", "c"}, []string{"a", "x", "b", "c"}, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tokenEditDistance(tc.a, tc.b), "dist(%v, %v)", tc.a, tc.b)
	}
}

func TestTokenizeLine(t *testing.T) {
	assert.Equal(t, []string{"dont", "stop", "me", "now"}, tokenizeLine("Don't stop me, now!"))
	assert.Empty(t, tokenizeLine("..."))
	assert.Empty(t, tokenizeLine(""))
}

func TestMatcher_ExactMatch(t *testing.T) {
	words := wordSeq(0.9, "hello", "world")
	lines := []LyricLine{{Text: "hello world"}}

	out := NewMatcher(nil).Align(lines, words)
	require.Len(t, out, 1)

	assert.Greater(t, out[0].Confidence, 0.6)
	assert.InDelta(t, 0.0, out[0].Timestamp, 1e-9)
}

func TestMatcher_NoOverlapStaysAtCursor(t *testing.T) {
	words := wordSeq(0.9, "completely", "different", "transcript", "content")
	lines := []LyricLine{{Text: "zebra quantum xylophone"}}

	cfg := config.Default()
	out := NewMatcher(cfg).Align(lines, words)
	require.Len(t, out, 1)

	assert.Less(t, out[0].Confidence, cfg.AcceptScore)
	assert.InDelta(t, cfg.CursorStep, out[0].Timestamp, 1e-9)
}

func TestMatcher_CursorAdvancesMonotonically(t *testing.T) {
	words := []CleanWord{
		{Text: "hello", Start: 0, End: 1, Probability: 0.9},
		{Text: "world", Start: 1, End: 2, Probability: 0.9},
		{Text: "good", Start: 5, End: 6, Probability: 0.9},
		{Text: "bye", Start: 6, End: 7, Probability: 0.9},
	}
	lines := []LyricLine{{Text: "hello world"}, {Text: "good bye"}}

	out := NewMatcher(nil).Align(lines, words)
	require.Len(t, out, 2)

	assert.InDelta(t, 0.0, out[0].Timestamp, 1e-9)
	assert.InDelta(t, 5.0, out[1].Timestamp, 1e-9)
	assert.Greater(t, out[1].Timestamp, out[0].Timestamp)
}

func TestMatcher_RepeatedPhraseMatchesEarliest(t *testing.T) {
	// The same phrase appears twice inside the window; first-found wins.
	words := []CleanWord{
		{Text: "hello", Start: 0, End: 1, Probability: 0.9},
		{Text: "world", Start: 1, End: 2, Probability: 0.9},
		{Text: "hello", Start: 5, End: 6, Probability: 0.9},
		{Text: "world", Start: 6, End: 7, Probability: 0.9},
	}
	out := NewMatcher(nil).Align([]LyricLine{{Text: "hello world"}}, words)
	require.Len(t, out, 1)
	assert.InDelta(t, 0.0, out[0].Timestamp, 1e-9)
}

func TestMatcher_FallbackRequiresHighScore(t *testing.T) {
	// The phrase sits far past the primary window. The fallback search
	// finds it with near-perfect similarity and takes it.
	words := []CleanWord{
		{Text: "midnight", Start: 40, End: 40.5, Probability: 0.95},
		{Text: "train", Start: 40.5, End: 41, Probability: 0.95},
		{Text: "going", Start: 41, End: 41.5, Probability: 0.95},
		{Text: "anywhere", Start: 41.5, End: 42, Probability: 0.95},
	}
	out := NewMatcher(nil).Align([]LyricLine{{Text: "midnight train going anywhere"}}, words)
	require.Len(t, out, 1)

	assert.InDelta(t, 40.0, out[0].Timestamp, 1e-9)
	assert.Greater(t, out[0].Confidence, 0.8)
}

func TestMatcher_EmptyTranscript(t *testing.T) {
	cfg := config.Default()
	lines := []LyricLine{{Text: "one"}, {Text: "two"}, {Text: "three"}}

	out := NewMatcher(cfg).Align(lines, nil)
	require.Len(t, out, 3)

	for i, line := range out {
		assert.Equal(t, lines[i].Text, line.Text)
		assert.Zero(t, line.Confidence)
		assert.InDelta(t, cfg.CursorStep, line.Timestamp, 1e-9)
	}
}

func TestMatcher_EmptyLineTokens(t *testing.T) {
	words := wordSeq(0.9, "hello", "world")
	out := NewMatcher(nil).Align([]LyricLine{{Text: "..."}}, words)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].Confidence)
}

func TestCollectWindow_IncludesWordOpenAtCursor(t *testing.T) {
	words := []CleanWord{
		{Text: "long", Start: 0, End: 20},
		{Text: "next", Start: 21, End: 22},
	}
	// Cursor sits inside the first word's span with the index hint past it.
	st := MatcherState{CursorTime: 10, CursorIndex: 1}
	lo, hi := collectWindow(words, st, 15)

	assert.Equal(t, 0, lo, "word still open at the cursor must be in range")
	assert.Equal(t, 2, hi)
}

func TestCollectWindow_OpenWordBehindClosedWord(t *testing.T) {
	words := []CleanWord{
		{Text: "drone", Start: 0, End: 20},
		{Text: "blip", Start: 1, End: 2},
		{Text: "next", Start: 21, End: 22},
	}
	// The closed short word sits between the hint and the still-open
	// long word; the backward walk must not stop at it.
	st := MatcherState{CursorTime: 10, CursorIndex: 2}
	lo, hi := collectWindow(words, st, 15)

	assert.Equal(t, 0, lo, "open word past a closed word must be in range")
	assert.Equal(t, 3, hi)
}
