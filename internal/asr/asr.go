package asr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"lyricsync/internal/align"
)

// Format identifies a known ASR output shape.
type Format string

const (
	// FormatAuto sniffs the shape from the document's top-level keys.
	FormatAuto Format = "auto"
	// FormatWhisper is snake_case faster-whisper/whisperx JSON with
	// times in seconds.
	FormatWhisper Format = "whisper"
	// FormatNative is whisper.cpp native JSON with t0/t1 offsets in
	// centiseconds.
	FormatNative Format = "native"
	// FormatWordSegments is a bare JSON array of word-level entries
	// with times in seconds, as whisperx alignment dumps them.
	FormatWordSegments Format = "words"
)

// estimatedProbability is assigned to words synthesized from segment
// text, which carries no per-word confidence.
const estimatedProbability = 0.5

// WhisperWord is one word of a faster-whisper/whisperx transcript.
type WhisperWord struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// WhisperSegment is one segment of a faster-whisper/whisperx transcript.
type WhisperSegment struct {
	Text  string        `json:"text"`
	Start float64       `json:"start"`
	End   float64       `json:"end"`
	Words []WhisperWord `json:"words"`
}

// WhisperResult is the top-level faster-whisper/whisperx JSON document.
type WhisperResult struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Segments []WhisperSegment `json:"segments"`
}

// NativeToken is one token of a whisper.cpp native transcript, with
// offsets in centiseconds.
type NativeToken struct {
	Text string  `json:"text"`
	T0   int64   `json:"t0"`
	T1   int64   `json:"t1"`
	P    float64 `json:"p"`
}

// NativeSegment is one segment of a whisper.cpp native transcript.
type NativeSegment struct {
	Text   string        `json:"text"`
	T0     int64         `json:"t0"`
	T1     int64         `json:"t1"`
	Tokens []NativeToken `json:"tokens"`
}

// NativeResult is the top-level whisper.cpp native JSON document.
type NativeResult struct {
	Transcription []NativeSegment `json:"transcription"`
}

// WordSegment is one entry of a whisperx word_segments array.
type WordSegment struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Score float64 `json:"score"`
}

// Decode parses a raw ASR JSON document into segments with all times in
// seconds. One adapter runs per document, so second and centisecond
// conventions can never mix within a run.
func Decode(data []byte, format Format) ([]align.RawSegment, error) {
	if format == FormatAuto || format == "" {
		detected, err := detect(data)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	switch format {
	case FormatWhisper:
		var result WhisperResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("decode whisper transcript: %w", err)
		}
		return fromWhisper(&result), nil
	case FormatNative:
		var result NativeResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("decode native transcript: %w", err)
		}
		return fromNative(&result), nil
	case FormatWordSegments:
		var entries []WordSegment
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode word segments: %w", err)
		}
		return fromWordSegments(entries), nil
	default:
		return nil, fmt.Errorf("unknown transcript format %q", format)
	}
}

// detect sniffs which backend produced a JSON document from its
// top-level shape and keys. A bare array is a whisperx word_segments
// dump; objects are told apart by their segment-list key.
func detect(data []byte) (Format, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatWordSegments, nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", fmt.Errorf("sniff transcript format: %w", err)
	}
	if _, ok := probe["transcription"]; ok {
		return FormatNative, nil
	}
	if _, ok := probe["segments"]; ok {
		return FormatWhisper, nil
	}
	return "", fmt.Errorf("transcript document matches no known format")
}

func fromWhisper(result *WhisperResult) []align.RawSegment {
	segments := make([]align.RawSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		raw := align.RawSegment{
			Text:  seg.Text,
			Start: seg.Start,
			End:   seg.End,
		}
		for _, w := range seg.Words {
			raw.Words = append(raw.Words, align.RawWord{
				Text:        w.Word,
				Start:       w.Start,
				End:         w.End,
				Probability: w.Probability,
			})
		}
		if len(raw.Words) == 0 {
			raw.Words = estimateWords(raw.Text, raw.Start, raw.End)
		}
		segments = append(segments, raw)
	}
	return segments
}

func fromNative(result *NativeResult) []align.RawSegment {
	segments := make([]align.RawSegment, 0, len(result.Transcription))
	for _, seg := range result.Transcription {
		raw := align.RawSegment{
			Text:  seg.Text,
			Start: centiseconds(seg.T0),
			End:   centiseconds(seg.T1),
		}
		for _, tok := range seg.Tokens {
			raw.Words = append(raw.Words, align.RawWord{
				Text:        tok.Text,
				Start:       centiseconds(tok.T0),
				End:         centiseconds(tok.T1),
				Probability: tok.P,
			})
		}
		if len(raw.Words) == 0 {
			raw.Words = estimateWords(raw.Text, raw.Start, raw.End)
		}
		segments = append(segments, raw)
	}
	return segments
}

// fromWordSegments wraps each word-level entry in its own single-word
// segment; the engine flattens words again downstream, so no grouping
// information is lost that the source ever had.
func fromWordSegments(entries []WordSegment) []align.RawSegment {
	segments := make([]align.RawSegment, 0, len(entries))
	for _, e := range entries {
		segments = append(segments, align.RawSegment{
			Text:  e.Word,
			Start: e.Start,
			End:   e.End,
			Words: []align.RawWord{{
				Text:        e.Word,
				Start:       e.Start,
				End:         e.End,
				Probability: e.Score,
			}},
		})
	}
	return segments
}

func centiseconds(cs int64) float64 {
	return float64(cs) / 100.0
}

// estimateWords synthesizes evenly-spaced words for a segment the
// backend delivered without word timing, dividing the segment duration
// by its whitespace token count.
func estimateWords(text string, start, end float64) []align.RawWord {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	duration := end - start
	if duration < 0 {
		duration = 0
	}
	step := duration / float64(len(fields))

	words := make([]align.RawWord, 0, len(fields))
	for i, f := range fields {
		words = append(words, align.RawWord{
			Text:        f,
			Start:       start + step*float64(i),
			End:         start + step*float64(i+1),
			Probability: estimatedProbability,
		})
	}
	return words
}
