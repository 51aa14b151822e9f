package align

// RawWord is a single ASR word with timing in seconds on the audio
// timeline and a model confidence in [0,1].
type RawWord struct {
	Text        string
	Start       float64
	End         float64
	Probability float64
}

// RawSegment is the ASR's own grouping of words. Words may be empty, in
// which case the boundary adapter estimates them from the segment text.
type RawSegment struct {
	Text  string
	Start float64
	End   float64
	Words []RawWord
}

// CleanWord is a sanitized RawWord.
type CleanWord struct {
	Text        string
	Start       float64
	End         float64
	Probability float64
}

// CleanSegment is a sanitized RawSegment. Segments whose text cleans to
// empty are never emitted.
type CleanSegment struct {
	Text  string
	Start float64
	End   float64
	Words []CleanWord
}

// LyricLine is one user-supplied lyric line with no timing. Input order
// is load-bearing: it drives the monotonic search cursor.
type LyricLine struct {
	Text string
}

// VoiceZone is a contiguous time range with no internal silence gap.
type VoiceZone struct {
	Start float64
	End   float64
}

// AlignedLine is the per-line output. Confidence records how much to
// trust Timestamp; callers decide presentation from it.
type AlignedLine struct {
	Text       string  `json:"text"`
	Timestamp  float64 `json:"timestamp"`
	Confidence float64 `json:"confidence"`
}
