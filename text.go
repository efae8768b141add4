package pagesum

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Text cleaning defaults.
const (
	DefaultMinLineLength = 21
	DefaultMaxChars      = 50000
	DefaultLineSeparator = ". "
	TruncationMarker     = "... [Content truncated]"
)

// TextRules configures how linearized page text is cleaned and bounded.
// Lengths are measured in characters (runes), not bytes.
type TextRules struct {
	// MinLineLength drops trimmed lines shorter than this.
	MinLineLength int

	// SkipPrefixes drops lines whose lowercased form starts with any entry.
	SkipPrefixes []string

	// SkipSubstrings drops lines whose lowercased form contains any entry.
	// The defaults are coarse and will also drop ordinary prose containing
	// them (e.g. "file" inside "profile").
	SkipSubstrings []string

	// SkipWords drops lines containing any entry as a whole word.
	SkipWords []string

	// Separator joins the surviving lines.
	Separator string

	// MaxChars bounds the cleaned text. Zero disables truncation.
	MaxChars int
}

// DefaultTextRules returns the rules used by all extractors unless overridden.
func DefaultTextRules() TextRules {
	return TextRules{
		MinLineLength:  DefaultMinLineLength,
		SkipPrefixes:   []string{"menu", "navigation", "skip to"},
		SkipSubstrings: []string{"image", "file", "reuters", "cnn", "@"},
		SkipWords:      []string{"ap"},
		Separator:      DefaultLineSeparator,
		MaxChars:       DefaultMaxChars,
	}
}

// Apply cleans newline-delimited text and truncates the result.
func (r TextRules) Apply(raw string) string {
	return r.Truncate(r.Clean(raw))
}

// Clean trims every line, drops short and noisy lines, and joins the rest
// with the separator.
func (r TextRules) Clean(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if r.KeepLine(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, r.Separator)
}

// KeepLine reports whether a trimmed line survives the filters.
func (r TextRules) KeepLine(line string) bool {
	if utf8.RuneCountInString(line) < r.MinLineLength {
		return false
	}
	lower := strings.ToLower(line)
	for _, prefix := range r.SkipPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	for _, s := range r.SkipSubstrings {
		if strings.Contains(lower, s) {
			return false
		}
	}
	if len(r.SkipWords) > 0 {
		for _, word := range strings.FieldsFunc(lower, isWordBreak) {
			if slices.Contains(r.SkipWords, word) {
				return false
			}
		}
	}
	return true
}

func isWordBreak(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Truncate cuts text longer than MaxChars and appends TruncationMarker.
// Text of exactly the truncated length that already ends with the marker is
// returned unchanged.
func (r TextRules) Truncate(text string) string {
	if r.MaxChars <= 0 {
		return text
	}
	n := utf8.RuneCountInString(text)
	if n <= r.MaxChars {
		return text
	}
	if n == r.MaxChars+utf8.RuneCountInString(TruncationMarker) && strings.HasSuffix(text, TruncationMarker) {
		return text
	}
	return truncateRunes(text, r.MaxChars) + TruncationMarker
}

// truncateRunes returns the first n runes of s.
func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// CountWords counts whitespace-delimited tokens.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// CharCount counts characters (runes) in s.
func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
