// preprocess.go reformats free-typed work history into the bulleted form the
// structurer expects. It only runs on user-typed input; model output goes
// straight to the tokenizer.
package resume

import (
	"regexp"
	"strings"
)

// ProjectsHeading is the keyword line that opens the work-history section.
const ProjectsHeading = "Projects Experience"

var monthYearPattern = regexp.MustCompile(`\d{1,2}/\d{4}`)

// PreprocessProjects bullets long unbulleted lines and splits long all-caps
// paragraphs into sentences. Title lines (anything with a pipe, " / " or a
// MM/YYYY date) and category headers are left untouched. The result always
// starts with the Projects Experience heading.
func PreprocessProjects(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ProjectsHeading
	}

	var out []string
	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			out = append(out, "")
		case isBulleted(line):
			out = append(out, line)
		case isShoutedParagraph(line):
			for _, sentence := range sentencesLongerThan(line, minShoutedSentence) {
				out = append(out, "- "+sentence)
			}
		case runeLen(line) > 20 && !looksLikeTitleLine(line) &&
			!IsCategoryHeader(line) && !isTechnologiesLine(line):
			out = append(out, "- "+line)
		default:
			out = append(out, line)
		}
	}

	result := strings.Join(out, "\n")
	if !strings.HasPrefix(strings.ToLower(result), strings.ToLower(ProjectsHeading)) {
		result = ProjectsHeading + "\n\n" + result
	}
	return result
}

// looksLikeTitleLine is the preprocessor's title test: a pipe, a " / "
// separator or a month/year date.
func looksLikeTitleLine(line string) bool {
	return strings.Contains(line, "|") ||
		strings.Contains(line, " / ") ||
		monthYearPattern.MatchString(line)
}
