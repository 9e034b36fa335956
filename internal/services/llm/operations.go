package llm

import (
	"context"
	"regexp"
	"strings"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

// Sampling settings for each operation.
const (
	convertTemperature = 0.2
	convertMaxTokens   = 16000
	improveTemperature = 0.3
	improveMaxTokens   = 8000
)

// Convert rewrites cvText in the given format. For the professional format
// the reply is marker text ready for the résumé parser.
func (c *Client) Convert(ctx context.Context, format, cvText, extraInstructions string) (string, error) {
	return c.complete(ctx, request{
		op:          "convert",
		system:      convertSystemPrompt,
		user:        convertPrompt(format, cvText, strings.TrimSpace(extraInstructions)),
		temperature: convertTemperature,
		maxTokens:   convertMaxTokens,
		sampling:    true,
	})
}

// Improve rewrites one section's text and cleans the reply for the form.
// An empty instruction selects the section's default.
func (c *Client) Improve(ctx context.Context, section, text, instruction string) (string, error) {
	if strings.TrimSpace(instruction) == "" {
		instruction = improveInstruction(section)
	}
	improved, err := c.complete(ctx, request{
		op:          "improve:" + section,
		system:      improveSystemPrompt(section),
		user:        improveUserPrompt(instruction, text),
		temperature: improveTemperature,
		maxTokens:   improveMaxTokens,
	})
	if err != nil {
		return "", err
	}
	return resume.CleanImprovedText(section, improved), nil
}

// ExtractSections asks the model to split a résumé into form sections and
// fills in the name and designation from the source text.
func (c *Client) ExtractSections(ctx context.Context, cvText string) (*resume.FormSubmission, error) {
	reply, err := c.complete(ctx, request{
		op:          extractionSection,
		system:      improveSystemPrompt(extractionSection),
		user:        improveUserPrompt(extractionPrompt, cvText),
		temperature: improveTemperature,
		maxTokens:   improveMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	form := SplitSections(reply)
	form.Name, form.Designation = SniffHeader(cvText)
	return &form, nil
}

// sectionLabels maps the reply labels to form fields. A label must start
// its line; anything after the colon on that line is ignored.
var sectionLabels = []struct {
	label string
	field func(*resume.FormSubmission) *string
}{
	{"TECHNICAL_SKILLS:", func(f *resume.FormSubmission) *string { return &f.TechnicalSkills }},
	{"SUMMARY:", func(f *resume.FormSubmission) *string { return &f.Summary }},
	{"INDUSTRY_EXPERIENCE:", func(f *resume.FormSubmission) *string { return &f.IndustryExperience }},
	{"FUNCTIONAL_SKILLS:", func(f *resume.FormSubmission) *string { return &f.FunctionalSkills }},
	{"CERTIFICATIONS:", func(f *resume.FormSubmission) *string { return &f.Certifications }},
	{"EDUCATION:", func(f *resume.FormSubmission) *string { return &f.Education }},
	{"PROJECTS_EXPERIENCE:", func(f *resume.FormSubmission) *string { return &f.ProjectsExperience }},
	{"WORK_HISTORY:", func(f *resume.FormSubmission) *string { return &f.ProjectsExperience }},
	{"EXPERIENCE:", func(f *resume.FormSubmission) *string { return &f.ProjectsExperience }},
}

// SplitSections reads a labelled extraction reply into a FormSubmission.
// Blank lines are dropped and lines before the first label are ignored. A
// repeated EDUCATION label starts the field over, so only the last block
// survives.
func SplitSections(reply string) resume.FormSubmission {
	var (
		form    resume.FormSubmission
		current *string
	)
	for _, raw := range strings.Split(reply, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if field, isLabel := matchLabel(&form, line); isLabel {
			current = field
			if field == &form.Education {
				form.Education = ""
			}
			continue
		}
		if current == nil {
			continue
		}
		if *current != "" {
			*current += "\n"
		}
		*current += line
	}
	return form
}

func matchLabel(form *resume.FormSubmission, line string) (*string, bool) {
	for _, l := range sectionLabels {
		if strings.HasPrefix(line, l.label) {
			return l.field(form), true
		}
	}
	return nil, false
}

var (
	namePattern         = regexp.MustCompile(`^[A-Za-z\s\-.]+$`)
	nameExclusions      = []string{"email", "phone", "linkedin", "summary", "experience", "skills"}
	designationKeywords = []string{"engineer", "manager", "developer", "analyst", "consultant", "specialist", "lead", "director", "architect"}
)

// headerScanLines is how many leading lines SniffHeader looks at.
const headerScanLines = 10

// SniffHeader guesses the candidate's name and designation from the first
// lines of a résumé. The name is the first short line made only of letters,
// spaces, hyphens and dots that is not a contact or section label. The
// designation is the first later line naming a role keyword.
func SniffHeader(text string) (name, designation string) {
	lines := strings.Split(text, "\n")
	if len(lines) > headerScanLines {
		lines = lines[:headerScanLines]
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		n := len([]rune(line))
		if n <= 3 || n >= 100 {
			continue
		}
		lower := strings.ToLower(line)

		if name == "" {
			if namePattern.MatchString(line) && !containsAny(lower, nameExclusions) {
				name = line
			}
			continue
		}
		if containsAny(lower, designationKeywords) {
			designation = line
			break
		}
	}
	return name, designation
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
