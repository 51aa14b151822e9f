package lyrics

import (
	"fmt"
	"math"
	"strings"

	"lyricsync/internal/align"
)

// ParseLines splits raw lyric text into ordered lines, trimming
// whitespace, dropping empty lines, and stripping any existing
// [mm:ss.xx] timing prefixes so the engine only ever sees plain text.
func ParseLines(text string) []align.LyricLine {
	var lines []align.LyricLine
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(stripTimePrefix(strings.TrimSpace(raw)))
		if line == "" {
			continue
		}
		lines = append(lines, align.LyricLine{Text: line})
	}
	return lines
}

// stripTimePrefix removes leading [mm:ss] or [mm:ss.xx] markers,
// repeatedly, since LRC files can stack several timestamps on one line.
func stripTimePrefix(line string) string {
	for {
		rest, ok := trimOneTimeTag(line)
		if !ok {
			return line
		}
		line = strings.TrimSpace(rest)
	}
}

func trimOneTimeTag(line string) (string, bool) {
	if !strings.HasPrefix(line, "[") {
		return line, false
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return line, false
	}

	inner := line[1:end]
	colon := strings.IndexByte(inner, ':')
	if colon <= 0 {
		return line, false
	}

	if !allDigits(inner[:colon]) {
		return line, false
	}
	rest := inner[colon+1:]
	if dot := strings.IndexAny(rest, ".:"); dot >= 0 {
		if !allDigits(rest[:dot]) || !allDigits(rest[dot+1:]) {
			return line, false
		}
	} else if !allDigits(rest) {
		return line, false
	}

	return line[end+1:], true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatLRC renders aligned lines as a standard LRC document with
// [mm:ss.xx] tags.
func FormatLRC(lines []align.AlignedLine) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(formatLRCTime(line.Timestamp))
		sb.WriteString(line.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// formatLRCTime converts seconds to an [mm:ss.xx] tag.
func formatLRCTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(math.Round(seconds * 100))
	minutes := total / 6000
	secs := (total % 6000) / 100
	centis := total % 100
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, secs, centis)
}
