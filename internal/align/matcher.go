package align

import (
	"strings"
	"unicode"

	"lyricsync/internal/config"
)

// MatcherState is the monotonic search cursor threaded through one
// alignment run. CursorTime is the time below which matches are not
// searched; CursorIndex is a word-index hint for the same boundary.
// Both only ever advance, which keeps earlier lyric lines from matching
// later in the transcript than subsequent ones.
type MatcherState struct {
	CursorTime  float64
	CursorIndex int
}

// Matcher performs windowed fuzzy matching of lyric lines against the
// sanitized word stream. A Matcher holds no per-run state and may be
// reused across songs; the cursor lives in MatcherState.
type Matcher struct {
	cfg *config.Settings
}

// NewMatcher creates a matcher with the given settings.
func NewMatcher(cfg *config.Settings) *Matcher {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Matcher{cfg: cfg}
}

// Align matches each lyric line, in order, to its best-scoring word
// span. Every line receives a timestamp and confidence; an unmatched
// line is anchored just past the cursor with its low score intact so
// quality degrades through the confidence channel rather than by error.
func (m *Matcher) Align(lines []LyricLine, words []CleanWord) []AlignedLine {
	out := make([]AlignedLine, len(lines))
	var st MatcherState
	for i, line := range lines {
		out[i] = m.alignLine(line, words, &st)
	}
	return out
}

func (m *Matcher) alignLine(line LyricLine, words []CleanWord, st *MatcherState) AlignedLine {
	tokens := tokenizeLine(line.Text)

	best := m.search(tokens, words, *st, m.cfg.PrimaryWindow)

	// The expanded window may only override a failed primary search
	// with a much more confident match, preventing runaway jumps.
	if best.score < m.cfg.LowScore {
		fallback := m.search(tokens, words, *st, m.cfg.FallbackWindow)
		if fallback.found && fallback.score > m.cfg.FallbackScore {
			best = fallback
		}
	}

	if best.found && best.score >= m.cfg.AcceptScore {
		next := best.time + m.cfg.CursorStep
		if next > st.CursorTime {
			st.CursorTime = next
		}
		for st.CursorIndex < len(words) && words[st.CursorIndex].Start < best.time {
			st.CursorIndex++
		}
		return AlignedLine{Text: line.Text, Timestamp: best.time, Confidence: best.score}
	}

	// Low-confidence placement: stay at the cursor so subsequent lines
	// do not desynchronize.
	return AlignedLine{
		Text:       line.Text,
		Timestamp:  st.CursorTime + m.cfg.CursorStep,
		Confidence: best.score,
	}
}

// searchResult is one scored candidate span.
type searchResult struct {
	score float64
	time  float64
	found bool
}

// search scans the window [cursorTime, cursorTime+window] for the span
// of words best matching the lyric tokens. Candidate span lengths run
// from len(tokens)-SpanSlackBelow to len(tokens)+SpanSlackAbove. Ties
// resolve first-found: earliest offset, then shortest span.
func (m *Matcher) search(tokens []string, words []CleanWord, st MatcherState, window float64) searchResult {
	if len(tokens) == 0 {
		return searchResult{}
	}

	lo, hi := collectWindow(words, st, window)
	if lo >= hi {
		return searchResult{}
	}

	firsts := make([]string, hi-lo)
	for i := lo; i < hi; i++ {
		firsts[i-lo] = firstToken(words[i].Text)
	}

	minLen := len(tokens) - m.cfg.SpanSlackBelow
	if minLen < 1 {
		minLen = 1
	}
	maxLen := len(tokens) + m.cfg.SpanSlackAbove

	var best searchResult
	for off := lo; off < hi; off++ {
		for spanLen := minLen; spanLen <= maxLen; spanLen++ {
			end := off + spanLen
			if end > hi {
				break
			}

			dist := tokenEditDistance(tokens, firsts[off-lo:end-lo])
			similarity := 1.0 / (1.0 + float64(dist))
			score := m.cfg.SimilarityWeight*similarity +
				m.cfg.ConfidenceWeight*avgProbability(words[off:end])

			if !best.found || score > best.score {
				best = searchResult{score: score, time: words[off].Start, found: true}
			}
		}
	}

	return best
}

// collectWindow returns the [lo,hi) index range of words whose time
// range intersects [cursorTime, cursorTime+window]. CursorIndex is only
// a scan-start hint: every word before it that is still open at the
// window start is pulled back into range, even when closed words sit
// between it and the hint.
func collectWindow(words []CleanWord, st MatcherState, window float64) (int, int) {
	winStart := st.CursorTime
	winEnd := st.CursorTime + window

	lo := st.CursorIndex
	if lo > len(words) {
		lo = len(words)
	}
	for i := lo - 1; i >= 0; i-- {
		if words[i].End >= winStart {
			lo = i
		}
	}
	for lo < len(words) && words[lo].End < winStart {
		lo++
	}

	hi := lo
	for hi < len(words) && words[hi].Start <= winEnd {
		hi++
	}
	return lo, hi
}

// tokenEditDistance is the classic Levenshtein recurrence over token
// sequences: substitution costs 1 when tokens differ, insertions and
// deletions cost 1, minimized over the three neighbors.
func tokenEditDistance(a, b []string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := prev[j-1] + cost // substitution
			if del := prev[j] + 1; del < d {
				d = del
			}
			if ins := curr[j-1] + 1; ins < d {
				d = ins
			}
			curr[j] = d
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func avgProbability(span []CleanWord) float64 {
	if len(span) == 0 {
		return 0
	}
	sum := 0.0
	for _, w := range span {
		sum += w.Probability
	}
	return sum / float64(len(span))
}

// tokenizeLine lowercases a lyric line, strips punctuation, and splits
// it into match tokens.
func tokenizeLine(text string) []string {
	var tokens []string
	for _, f := range strings.Fields(text) {
		if t := normalizeToken(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// firstToken returns the normalized first whitespace token of a cleaned
// word's text. Cleaned words are usually single tokens, but rebuilt
// segment text and bracketed tags can carry more than one.
func firstToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return normalizeToken(fields[0])
}

func normalizeToken(tok string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(tok) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
