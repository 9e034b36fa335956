// predicates.go holds the named line classifiers used by the project
// structurer. The renderer reuses IsCategoryHeader so that parse-time and
// render-time agree on what a category header is.
//
// Precedence in StructureProjects, first match wins:
//
//  1. isCombinedProjectLine  "Title / Company | dates | location"
//  2. isDatesLine            "Dates: 01/2020 - Present | Remote"
//  3. isTechnologiesLine     "Technologies: Go, Postgres"
//  4. isBulleted             "- did something"
//  5. IsCategoryHeader       "ETL Development:"
//  6. everything else        title or continuation, see looksLikeTitle
package resume

import (
	"regexp"
	"strings"
)

var (
	dateRangePattern    = regexp.MustCompile(`(?i)([0-9]{1,2}/[0-9]{4}|[0-9]{4})\s*[-–—]\s*([0-9]{1,2}/[0-9]{4}|[0-9]{4}|present|current)`)
	datesLabelPattern   = regexp.MustCompile(`(?i)dates?:`)
	leadingDatesLabel   = regexp.MustCompile(`(?i)^dates?:\s*`)
	technologiesLabel   = regexp.MustCompile(`(?i)technologies?:`)
	technologySplitter  = regexp.MustCompile(`[,;]|\s+and\s+`)
	leadingMonthYear    = regexp.MustCompile(`^\d{1,2}/\d{4}`)
	trailingLocationSep = regexp.MustCompile(`\|\s*(.+)$`)
)

// projectSectionKeywords mark lines that belong to section structure rather
// than to a project.
var projectSectionKeywords = []string{
	"technical skills", "industry experience", "functional skills",
	"education", "summary", "certification", "projects experience",
	"work experience", "left_column", "right_column",
}

// titleIndicators are role words that make a bare line read as a job title.
var titleIndicators = []string{
	" – ", " manager", " consultant", " lead", " engineer",
	" analyst", " developer", " director",
}

// hasTitleDelimiter reports whether a line separates title and company.
func hasTitleDelimiter(line string) bool {
	return strings.Contains(line, " / ") ||
		(strings.Contains(line, ",") && strings.Contains(line, "|")) ||
		strings.Contains(line, "|")
}

// isCombinedProjectLine is rule 1: a title delimiter plus a date range on
// one unbulleted line. "Dates: ... | Location" belongs to rule 2.
func isCombinedProjectLine(line string) bool {
	return !isBulleted(line) &&
		!leadingDatesLabel.MatchString(line) &&
		dateRangePattern.MatchString(line) &&
		hasTitleDelimiter(line)
}

// isDatesLine is rule 2: an explicit "Dates:" label, or a bare date range
// with nothing that looks like a title.
func isDatesLine(line string) bool {
	if isBulleted(line) {
		return false
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, "dates:") ||
		(dateRangePattern.MatchString(line) && !hasTitleDelimiter(line))
}

// isTechnologiesLine is rule 3. Technologies are only ever recognised by
// their label, never by content.
func isTechnologiesLine(line string) bool {
	return strings.Contains(strings.ToLower(line), "technologies:")
}

// IsCategoryHeader reports whether a responsibility entry is a sub-heading
// such as "ETL Development:" rather than a bullet.
func IsCategoryHeader(line string) bool {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)
	return line != "" &&
		!isBulleted(line) &&
		strings.HasSuffix(line, ":") &&
		strings.Count(line, ":") == 1 &&
		runeLen(line) < 100 &&
		!strings.HasPrefix(lower, "technologies") &&
		!strings.HasPrefix(lower, "dates") &&
		!containsAny(lower, projectSectionKeywords)
}

// isSectionBoundary reports whether a bare line mentions a section keyword.
func isSectionBoundary(line string) bool {
	return containsAny(strings.ToLower(line), projectSectionKeywords)
}

// isShoutedParagraph matches a long all-caps block pasted without bullets.
func isShoutedParagraph(line string) bool {
	return runeLen(line) > 200 && isUpper(line)
}

// looksLikeTitle is rule 6's title test. The last clause means that once a
// project has content, the next unstructured line starts a new project.
func looksLikeTitle(line string, current *ProjectEntry) bool {
	lower := strings.ToLower(line)
	return isUpper(line) ||
		strings.Contains(line, " / ") ||
		strings.Contains(line, "|") ||
		containsAny(lower, titleIndicators) ||
		(current != nil && len(current.Responsibilities) > 0)
}
