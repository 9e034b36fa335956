// form.go turns a structured form submission into marker text so that form
// input and model output share one parsing path.
package resume

import (
	"fmt"
	"strings"
)

// FormSubmission is the structured résumé a user fills in by hand.
// Every field is free text; list fields accept newline- or comma-separated items.
type FormSubmission struct {
	Name               string `json:"name"`
	Designation        string `json:"designation"`
	TechnicalSkills    string `json:"technical_skills"`
	Summary            string `json:"summary"`
	IndustryExperience string `json:"industry_experience"`
	FunctionalSkills   string `json:"functional_skills"`
	Certifications     string `json:"certifications"`
	Education          string `json:"education"`
	ProjectsExperience string `json:"projects_experience"`
}

// HeaderLine builds the "Name | Designation" header, falling back to a
// placeholder when both halves are blank.
func (f FormSubmission) HeaderLine() string {
	name := strings.TrimSpace(f.Name)
	designation := strings.TrimSpace(f.Designation)
	switch {
	case name != "" && designation != "":
		return name + " | " + designation
	case name != "":
		return name
	case designation != "":
		return designation
	}
	return "Name | Designation"
}

const formTemplate = `[HEADER]
%s

[LEFT_COLUMN_START]
Technical Skills:
%s

Industry Experience:
%s

Functional Skills:
%s
[LEFT_COLUMN_END]

[RIGHT_COLUMN_START]
Summary:
%s

Education/Qualifications/Certifications:
%s
%s
[RIGHT_COLUMN_END]

[PROJECTS_EXPERIENCE]
%s
`

// FormatForm renders the submission as marker text.
func FormatForm(f FormSubmission) string {
	return fmt.Sprintf(formTemplate,
		f.HeaderLine(),
		keepLines(f.TechnicalSkills),
		bulletList(f.IndustryExperience, true),
		bulletList(f.FunctionalSkills, true),
		strings.TrimSpace(f.Summary),
		bulletList(f.Certifications, true),
		bulletList(f.Education, false),
		PreprocessProjects(f.ProjectsExperience),
	)
}

// bulletList emits one "- item" line per item. Commas split items only when
// splitCommas is set; education entries carry commas of their own.
func bulletList(text string, splitCommas bool) string {
	if splitCommas {
		text = strings.ReplaceAll(text, ",", "\n")
	}
	var items []string
	for _, line := range splitLines(text) {
		if item := strings.TrimSpace(line); item != "" {
			items = append(items, "- "+item)
		}
	}
	return strings.Join(items, "\n")
}

// keepLines trims each line and drops the blank ones. Technical-skill
// category lines are passed through untouched.
func keepLines(text string) string {
	var lines []string
	for _, line := range splitLines(text) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
