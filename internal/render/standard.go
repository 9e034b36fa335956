// standard.go builds the single-flow layout used by the traditional,
// academic, ATS-friendly and creative formats. It works on the raw model
// text line by line rather than on a ContentModel.
package render

import (
	"strings"
	"unicode"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

var headingKeywords = []string{
	"contact", "summary", "objective", "profile", "experience",
	"education", "skills", "certifications", "projects", "publications",
	"awards", "languages", "references",
}

// BuildStandard lays out text as a flow of headings and paragraphs.
func BuildStandard(format, text string) *Plan {
	plan := &Plan{
		Format:   format,
		Page:     PageSetup{Top: 1.0, Right: 1.0, Bottom: 1.0, Left: 1.0},
		Font:     baseFont,
		FontSize: baseSize,
	}

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isRule(line) || isMarker(line) {
			continue
		}
		if IsHeading(line) {
			plan.Body = append(plan.Body, Paragraph{
				Role:       RoleSectionHeading,
				Runs:       []Run{{Text: resume.StripMarkdown(line), Bold: true, Size: 14}},
				SpaceAfter: 6,
			})
			continue
		}
		plan.Body = append(plan.Body, Paragraph{
			Role:       RoleText,
			Runs:       []Run{{Text: resume.StripMarkdown(line)}},
			SpaceAfter: 3,
		})
	}
	return plan
}

// IsHeading reports whether a line reads as a section heading: a short
// upper- or title-case line naming a common section, or a markdown heading.
func IsHeading(line string) bool {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return true
	}
	lower := strings.ToLower(line)
	for _, keyword := range headingKeywords {
		if strings.Contains(lower, keyword) {
			return len([]rune(line)) < 50 && (isAllUpper(line) || isTitleCase(line))
		}
	}
	return false
}

// isMarker matches bracketed layout markers such as [LEFT_COLUMN_START],
// which only the two-column formats interpret.
func isMarker(line string) bool {
	if len(line) < 3 || line[0] != '[' || line[len(line)-1] != ']' {
		return false
	}
	for _, r := range line[1 : len(line)-1] {
		if r != '_' && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// isRule matches horizontal rules such as "---" or "***".
func isRule(line string) bool {
	return strings.Trim(line, "-=*_ ") == "" && len(line) >= 3
}

func isAllUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// isTitleCase reports whether every word starts with an upper-case letter
// followed only by lower-case ones.
func isTitleCase(s string) bool {
	cased, prevCased := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased, cased = true, true
		default:
			prevCased = false
		}
	}
	return cased
}
