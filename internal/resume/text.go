// text.go holds the low-level string helpers shared by every parsing stage.
package resume

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	boldStarsPattern   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicStarsPattern = regexp.MustCompile(`\*([^*]+)\*`)
	htmlBoldPattern    = regexp.MustCompile(`(?i)</?b>|</?strong>`)
	headingHashPattern = regexp.MustCompile(`^#+\s*`)
	bulletPattern      = regexp.MustCompile(`^[-•*▪]\s*`)
)

// StripMarkdown removes emphasis markers (**x**, *x*, <b>, <strong>) and
// leading heading hashes, then trims the result.
func StripMarkdown(s string) string {
	s = boldStarsPattern.ReplaceAllString(s, "$1")
	s = italicStarsPattern.ReplaceAllString(s, "$1")
	s = htmlBoldPattern.ReplaceAllString(s, "")
	s = headingHashPattern.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

// StripBullet removes one leading bullet glyph and the whitespace after it.
func StripBullet(s string) string {
	return strings.TrimSpace(bulletPattern.ReplaceAllString(strings.TrimSpace(s), ""))
}

// CleanLine strips markdown and then a leading bullet.
func CleanLine(s string) string {
	return StripBullet(StripMarkdown(s))
}

// isBulleted reports whether a trimmed line starts with a bullet glyph.
// A lone "*" only counts when followed by a space so "**bold**" is not a bullet.
func isBulleted(line string) bool {
	return strings.HasPrefix(line, "-") ||
		strings.HasPrefix(line, "•") ||
		strings.HasPrefix(line, "▪") ||
		strings.HasPrefix(line, "* ")
}

// isUpper reports whether s has at least one cased letter and no lower-case ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}

// runeLen counts characters rather than bytes so "•" and "–" count once.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// splitSentences breaks text after '.', '!' or '?' when the punctuation is
// followed by whitespace and then an upper-case ASCII letter.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) || runes[j] < 'A' || runes[j] > 'Z' {
			continue
		}
		sentences = append(sentences, strings.TrimSpace(string(runes[start:i+1])))
		start = j
		i = j - 1
	}
	if start < len(runes) {
		sentences = append(sentences, strings.TrimSpace(string(runes[start:])))
	}
	return sentences
}

// sentencesLongerThan splits text into sentences and keeps those whose
// length exceeds min characters.
func sentencesLongerThan(text string, min int) []string {
	var out []string
	for _, s := range splitSentences(text) {
		if runeLen(s) > min {
			out = append(out, s)
		}
	}
	return out
}

// splitLines normalises line endings and splits on '\n'.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
