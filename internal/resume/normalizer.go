// normalizer.go turns the raw flat-section buckets into ContentModel lists.
package resume

import "strings"

// sectionEchoes are section titles the model sometimes repeats inside a
// section body. They are never kept as content.
var sectionEchoes = map[string]bool{
	"technical skills":                        true,
	"industry experience":                     true,
	"functional skills":                       true,
	"summary":                                 true,
	"professional summary":                    true,
	"education":                               true,
	"certifications":                          true,
	"certification":                           true,
	"education/qualifications/certifications": true,
	"projects experience":                     true,
	"work experience":                         true,
}

// isSectionEcho reports whether line is just a section title.
func isSectionEcho(line string) bool {
	key := strings.ToLower(strings.TrimSpace(line))
	key = strings.TrimSpace(strings.TrimSuffix(key, ":"))
	return sectionEchoes[key]
}

// NormalizeTechnicalSkills keeps every line verbatim, category or bare.
// Only empty lines and section-title echoes are dropped.
func NormalizeTechnicalSkills(lines []string) []string {
	var out []string
	for _, raw := range lines {
		line := CleanLine(raw)
		if line == "" || isSectionEcho(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// NormalizeList splits on newlines and commas and keeps every non-empty
// token in order. Duplicates are kept.
func NormalizeList(lines []string) []string {
	var out []string
	for _, raw := range lines {
		line := CleanLine(raw)
		if line == "" || isSectionEcho(line) {
			continue
		}
		for _, token := range strings.Split(line, ",") {
			token = StripBullet(token)
			if token == "" || isSectionEcho(token) {
				continue
			}
			out = append(out, token)
		}
	}
	return out
}

// NormalizeEducation returns the last candidate line, or nil.
func NormalizeEducation(lines []string) []string {
	var m ContentModel
	for _, raw := range lines {
		line := CleanLine(raw)
		if line == "" || isSectionEcho(line) {
			continue
		}
		m.SetEducation(line)
	}
	return m.Education
}

// NormalizeSummary groups lines into paragraphs. When the text has blank-line
// boundaries each block becomes one paragraph with its lines joined by spaces;
// otherwise every line is its own paragraph.
func NormalizeSummary(lines []string) []string {
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return nil
	}

	separator := "\n\n"
	if !strings.Contains(text, separator) {
		separator = "\n"
	}

	var paragraphs []string
	for _, block := range strings.Split(text, separator) {
		var parts []string
		for _, raw := range strings.Split(block, "\n") {
			line := CleanLine(raw)
			if line == "" || isSectionEcho(line) {
				continue
			}
			parts = append(parts, line)
		}
		if len(parts) > 0 {
			paragraphs = append(paragraphs, strings.Join(parts, " "))
		}
	}
	return paragraphs
}
