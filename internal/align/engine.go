package align

import (
	"sort"

	"lyricsync/internal/config"
)

// Engine composes the full alignment pipeline for one song: sanitize
// the transcript, infer voice zones, fuzzy-match each lyric line, then
// interpolate the lines the matcher could not place. All state is local
// to a call, so one Engine can align songs concurrently.
type Engine struct {
	cfg *config.Settings
}

// New creates an engine; a nil cfg uses the defaults.
func New(cfg *config.Settings) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{cfg: cfg}
}

// Align assigns a timestamp and confidence to every lyric line. The
// output always has exactly one entry per input line, in input order.
// Empty lyrics yield nil; an empty or fully-filtered transcript yields
// cursor-anchored lines with confidence 0.
func (e *Engine) Align(lines []LyricLine, raw []RawSegment) []AlignedLine {
	if len(lines) == 0 {
		return nil
	}

	segments := Sanitize(raw)
	words := flattenWords(segments)
	zones := InferVoiceZones(words, e.cfg.SilenceGap)

	aligned := NewMatcher(e.cfg).Align(lines, words)
	Interpolate(aligned, zones, e.cfg)
	return aligned
}

// flattenWords collects every clean word across segments in time order.
// ASR occasionally emits out-of-order or overlapping words; ordering is
// restored here, overlaps are tolerated downstream.
func flattenWords(segments []CleanSegment) []CleanWord {
	var words []CleanWord
	for _, seg := range segments {
		words = append(words, seg.Words...)
	}
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Start < words[j].Start
	})
	return words
}
