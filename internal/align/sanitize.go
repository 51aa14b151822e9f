package align

import (
	"strings"
	"unicode"
)

// structuralTags is the whitelist of bracketed section markers that
// survive sanitization. All other bracketed or parenthesized content is
// stripped.
var structuralTags = map[string]struct{}{
	"instrumental": {},
	"verse":        {},
	"chorus":       {},
	"bridge":       {},
	"intro":        {},
	"outro":        {},
	"solo":         {},
	"hook":         {},
	"break":        {},
}

// noiseVocabulary matches whole cleaned texts that are ASR artifacts
// rather than sung content.
var noiseVocabulary = map[string]struct{}{
	"noise":    {},
	"machine":  {},
	"whirring": {},
	"humming":  {},
	"brrr":     {},
	"clicking": {},
	"silence":  {},
	"music":    {},
	"applause": {},
	"cheering": {},
}

// creditPrefixes match hallucinated credits and caption boilerplate.
var creditPrefixes = []string{"translated by", "subtitle", "caption"}

// tagMark delimits a protected structural tag between the strip passes.
// Private-use rune, cannot occur in real transcript text.
const tagMark = ''

// Sanitize normalizes raw ASR segments into clean segments: structural
// tags are preserved and deduplicated, noise tokens and hallucinated
// credits are discarded, and segment text is rebuilt from surviving
// words when the segment's own text was unusable. Segments that clean
// to empty are dropped. Pure transform, never fails.
func Sanitize(segments []RawSegment) []CleanSegment {
	out := make([]CleanSegment, 0, len(segments))

	for _, seg := range segments {
		text := CleanText(seg.Text)
		if isNoise(text) {
			text = ""
		}

		// Word-level filtering mirrors the segment level, except a
		// preserved structural tag is always kept.
		words := make([]CleanWord, 0, len(seg.Words))
		for _, w := range seg.Words {
			wt := CleanText(w.Text)
			if wt == "" {
				continue
			}
			if isNoise(wt) && !isStructuralTag(wt) {
				continue
			}
			words = append(words, CleanWord{
				Text:        wt,
				Start:       w.Start,
				End:         w.End,
				Probability: w.Probability,
			})
		}

		// Recovery: the segment text was discarded but the cleaned
		// words still carry usable content.
		if text == "" && len(words) > 0 {
			parts := make([]string, 0, len(words))
			for _, w := range words {
				parts = append(parts, w.Text)
			}
			rebuilt := strings.Join(parts, " ")
			if rebuilt != "" && !isNoise(rebuilt) {
				text = rebuilt
			}
		}

		if text == "" {
			continue
		}
		out = append(out, CleanSegment{
			Text:  text,
			Start: seg.Start,
			End:   seg.End,
			Words: words,
		})
	}

	return out
}

// CleanText runs the two-pass cleaner: protect whitelisted structural
// tags behind placeholder tokens, strip all other bracketed content and
// punctuation, then restore the tags in bracket syntax, collapsing
// immediate repeats. Idempotent.
func CleanText(text string) string {
	return restoreTags(stripPunctuation(protectTags(text)))
}

// protectTags replaces whitelisted [tag]/(tag) groups with placeholder
// tokens and drops every other bracketed or parenthesized group.
func protectTags(text string) string {
	var b strings.Builder
	runes := []rune(text)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '[' && r != '(' {
			b.WriteRune(r)
			continue
		}

		closer := ']'
		if r == '(' {
			closer = ')'
		}
		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == closer {
				end = j
				break
			}
		}
		if end < 0 {
			// Unterminated bracket: punctuation stripping removes it.
			b.WriteRune(r)
			continue
		}

		inner := strings.ToLower(strings.TrimSpace(string(runes[i+1 : end])))
		if _, ok := structuralTags[inner]; ok {
			b.WriteRune(' ')
			b.WriteRune(tagMark)
			b.WriteString(inner)
			b.WriteRune(tagMark)
			b.WriteRune(' ')
		}
		i = end
	}

	return b.String()
}

// stripPunctuation removes everything but letters, digits, whitespace,
// and tag placeholders, then collapses whitespace runs.
func stripPunctuation(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r == tagMark || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// restoreTags rewrites placeholder tokens as bracketed tags and drops
// immediately repeated identical tags.
func restoreTags(text string) string {
	if text == "" {
		return ""
	}

	mark := string(tagMark)
	var out []string
	prevTag := ""

	for _, f := range strings.Fields(text) {
		if len(f) > 2 && strings.HasPrefix(f, mark) && strings.HasSuffix(f, mark) {
			tag := "[" + titleCase(strings.Trim(f, mark)) + "]"
			if tag == prevTag {
				continue
			}
			out = append(out, tag)
			prevTag = tag
			continue
		}
		out = append(out, f)
		prevTag = ""
	}

	return strings.Join(out, " ")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// isNoise reports whether a cleaned text is exactly a noise-vocabulary
// entry or starts with a credits/caption phrase.
func isNoise(cleaned string) bool {
	lower := strings.ToLower(cleaned)
	if _, ok := noiseVocabulary[lower]; ok {
		return true
	}
	for _, p := range creditPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// isStructuralTag reports whether a cleaned text is a single preserved
// structural tag like "[Instrumental]".
func isStructuralTag(cleaned string) bool {
	if !strings.HasPrefix(cleaned, "[") || !strings.HasSuffix(cleaned, "]") {
		return false
	}
	_, ok := structuralTags[strings.ToLower(cleaned[1:len(cleaned)-1])]
	return ok
}
