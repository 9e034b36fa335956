// cleanup.go tidies model-improved section text before it goes back to the
// form. Unlike the parser it returns plain text, one item per line.
package resume

import (
	"regexp"
	"strings"
)

var improvedBulletPattern = regexp.MustCompile(`(?m)^[-*•]\s+`)

// CleanImprovedText strips markdown from a model-improved section and applies
// per-section rules: technical skills keep category lines and drop
// case-insensitive duplicates, list sections drop short colon-terminated
// sub-headings, and everything else only loses bold markers and bullets.
func CleanImprovedText(section, text string) string {
	text = boldStarsPattern.ReplaceAllString(strings.TrimSpace(text), "$1")

	switch Section(section) {
	case SectionTechnical:
		seen := make(map[string]bool)
		var items []string
		for _, line := range improvedLines(text) {
			if !strings.Contains(line, ":") && runeLen(line) <= 3 {
				continue
			}
			key := strings.ToLower(line)
			if seen[key] {
				continue
			}
			seen[key] = true
			items = append(items, line)
		}
		return strings.Join(items, "\n")

	case SectionIndustry, SectionFunctional, SectionCertifications, SectionEducation:
		var items []string
		for _, line := range improvedLines(text) {
			if strings.HasSuffix(line, ":") && runeLen(line) < 50 {
				continue
			}
			items = append(items, line)
		}
		return strings.Join(items, "\n")
	}

	return strings.TrimSpace(improvedBulletPattern.ReplaceAllString(text, ""))
}

// improvedLines splits text into trimmed, bullet-free, non-empty lines.
func improvedLines(text string) []string {
	var lines []string
	for _, line := range splitLines(text) {
		line = strings.TrimSpace(improvedBulletPattern.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
