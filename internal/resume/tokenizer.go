// tokenizer.go splits a flat text blob into named section buckets.
//
// Two marker styles are recognised: bracketed structural markers such as
// [HEADER] or [PROJECTS_EXPERIENCE], and keyword header lines such as
// "Technical Skills:". Known marker lines are consumed; everything else,
// including unrecognised bracketed lines, lands in the bucket of whichever
// section is currently open.
package resume

import (
	"regexp"
	"strings"
)

// Section names one bucket of the tokenizer output.
type Section string

const (
	SectionNone           Section = ""
	SectionHeader         Section = "header"
	SectionTechnical      Section = "technical_skills"
	SectionIndustry       Section = "industry_experience"
	SectionFunctional     Section = "functional_skills"
	SectionSummary        Section = "summary"
	SectionEducation      Section = "education"
	SectionCertifications Section = "certifications"
	SectionProjects       Section = "projects"

	// sectionCombined is the Education/Qualifications/Certifications mode.
	// It has no bucket of its own; lines are routed to education or
	// certifications as they arrive.
	sectionCombined Section = "education_certifications"
)

// serializeMarkers is the marker line written before each bucket by Serialize.
var serializeMarkers = map[Section]string{
	SectionHeader:         "[HEADER]",
	SectionTechnical:      "Technical Skills:",
	SectionIndustry:       "Industry Experience:",
	SectionFunctional:     "Functional Skills:",
	SectionSummary:        "Summary:",
	SectionEducation:      "Education:",
	SectionCertifications: "Certifications:",
	SectionProjects:       "[PROJECTS_EXPERIENCE]",
}

var (
	bracketMarkerPattern = regexp.MustCompile(`^\[[A-Za-z_ /]+\]$`)
	yearPattern          = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// canonicalProjectSwitches are the only lines allowed to close the projects
// section. Work-history prose mentions "education" or "summary" far too often
// for the loose keyword rules to apply there.
var canonicalProjectSwitches = map[string]Section{
	"technical skills":                          SectionTechnical,
	"industry experience":                       SectionIndustry,
	"functional skills":                         SectionFunctional,
	"summary":                                   SectionSummary,
	"professional summary":                      SectionSummary,
	"education":                                 SectionEducation,
	"certifications":                            SectionCertifications,
	"education/qualifications/certifications":   sectionCombined,
	"education / qualifications/certifications": sectionCombined,
	"projects experience":                       SectionProjects,
}

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "diploma",
	"b.sc", "b.tech", "m.sc", "m.tech", "mba", "bba", "bca", "mca",
	"university", "college", "institute", "b.e", "be ", "engineering",
}

var certificationKeywords = []string{
	"aws", "azure", "certified", "certification", "microsoft", "oracle",
	"sap", "cisco", "google", "professional", "associate", "expert",
	"cloud", "administrator", "developer", "architect", "engineer",
}

// Tokens is the tokenizer output: the header line plus one bucket of raw
// lines per section, in first-seen order.
type Tokens struct {
	Header   string
	Sections map[Section][]string
	order    []Section
}

func newTokens() *Tokens {
	return &Tokens{Sections: make(map[Section][]string)}
}

// Lines returns the raw lines collected for a section.
func (t *Tokens) Lines(s Section) []string {
	return t.Sections[s]
}

// Text returns a section bucket newline-joined.
func (t *Tokens) Text(s Section) string {
	return strings.Join(t.Sections[s], "\n")
}

// Order lists the sections that received content, in first-seen order.
func (t *Tokens) Order() []Section {
	return append([]Section(nil), t.order...)
}

func (t *Tokens) add(s Section, line string) {
	if _, ok := t.Sections[s]; !ok {
		t.order = append(t.order, s)
	}
	t.Sections[s] = append(t.Sections[s], line)
}

// Serialize writes every bucket back out behind its canonical marker.
// Tokenizing the result yields the same buckets.
func (t *Tokens) Serialize() string {
	var b strings.Builder
	if t.Header != "" || len(t.Sections[SectionHeader]) > 0 {
		b.WriteString(serializeMarkers[SectionHeader] + "\n")
		b.WriteString(t.Header + "\n")
		for _, line := range t.Sections[SectionHeader] {
			b.WriteString(line + "\n")
		}
	}
	for _, s := range t.order {
		if s == SectionHeader {
			continue
		}
		b.WriteString(serializeMarkers[s] + "\n")
		for _, line := range t.Sections[s] {
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Tokenize scans text line by line and buckets it by section.
func Tokenize(text string) *Tokens {
	tokens := newTokens()
	current := SectionNone

	for _, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)

		if line == "" {
			if current == SectionSummary {
				tokens.add(SectionSummary, "")
			}
			continue
		}

		if next, ok := bracketMarker(line); ok {
			current = next
			continue
		}

		if current == SectionProjects {
			if next, ok := canonicalProjectSwitch(line); ok {
				current = next
				continue
			}
			tokens.add(SectionProjects, line)
			continue
		}

		if next, ok := DetectSectionHeader(line); ok {
			current = next
			continue
		}

		switch current {
		case SectionNone:
			if looksLikeHeaderLine(line) && tokens.Header == "" {
				tokens.Header = line
			}
		case SectionHeader:
			if tokens.Header == "" {
				tokens.Header = line
			} else {
				tokens.add(SectionHeader, line)
			}
		case sectionCombined:
			routeCombinedLine(tokens, line)
		default:
			tokens.add(current, line)
		}
	}
	return tokens
}

// bracketMarker maps a known [MARKER] line to the section it opens. Other
// bracketed lines such as "[Remote]" are ordinary content and report false.
func bracketMarker(line string) (Section, bool) {
	if !bracketMarkerPattern.MatchString(line) {
		return SectionNone, false
	}

	switch strings.ToUpper(line) {
	case "[HEADER]":
		return SectionHeader, true
	case "[LEFT_COLUMN_START]", "[LEFT_COLUMN]", "[LEFT_COLUMN_END]",
		"[RIGHT_COLUMN_START]", "[RIGHT_COLUMN]", "[RIGHT_COLUMN_END]":
		return SectionNone, true
	case "[PROJECTS_EXPERIENCE]", "[PROJECTS]", "[EXPERIENCE]", "[WORK_EXPERIENCE]":
		return SectionProjects, true
	case "[SUMMARY]":
		return SectionSummary, true
	case "[SKILLS]", "[TECHNICAL_SKILLS]":
		return SectionTechnical, true
	case "[INDUSTRY_EXPERIENCE]":
		return SectionIndustry, true
	case "[FUNCTIONAL_SKILLS]":
		return SectionFunctional, true
	case "[EDUCATION]":
		return SectionEducation, true
	case "[CERTIFICATIONS]":
		return SectionCertifications, true
	}
	return SectionNone, false
}

// DetectSectionHeader matches keyword header lines such as "Technical Skills:".
// A keyword only counts when the line ends in a colon or is short, so prose
// that merely mentions "education" is left alone.
func DetectSectionHeader(line string) (Section, bool) {
	trimmed := strings.TrimSpace(StripMarkdown(line))
	if trimmed == "" || isBulleted(trimmed) {
		return SectionNone, false
	}
	lower := strings.ToLower(trimmed)
	colon := strings.HasSuffix(lower, ":")
	n := runeLen(lower)
	short := func(limit int) bool { return colon || n < limit }

	switch {
	case isCombinedHeader(lower) && short(50):
		return sectionCombined, true
	case isProjectsHeader(lower) && short(50):
		return SectionProjects, true
	case strings.Contains(lower, "technical skills") && short(30):
		return SectionTechnical, true
	case strings.Contains(lower, "industry experience") && short(30):
		return SectionIndustry, true
	case strings.Contains(lower, "functional skills") && short(30):
		return SectionFunctional, true
	case strings.Contains(lower, "summary") && short(30):
		return SectionSummary, true
	case (strings.Contains(lower, "certification") || strings.Contains(lower, "training")) && short(40):
		return SectionCertifications, true
	case strings.Contains(lower, "education") && short(30):
		return SectionEducation, true
	}
	return SectionNone, false
}

func isCombinedHeader(lower string) bool {
	compact := strings.ReplaceAll(lower, " ", "")
	hasEdu := strings.Contains(lower, "education")
	hasQual := strings.Contains(lower, "qualification")
	hasCert := strings.Contains(lower, "certification")
	switch {
	case hasEdu && hasQual && hasCert:
		return true
	case strings.Contains(compact, "education/qualification"):
		return true
	case (hasEdu || hasQual) && hasCert && strings.Contains(lower, "/"):
		return true
	}
	return false
}

func isProjectsHeader(lower string) bool {
	return strings.Contains(lower, "projects experience") ||
		(strings.HasPrefix(lower, "projects") && strings.Contains(lower, "experience"))
}

func canonicalProjectSwitch(line string) (Section, bool) {
	key := strings.ToLower(strings.TrimSpace(StripMarkdown(line)))
	key = strings.TrimSpace(strings.TrimSuffix(key, ":"))
	s, ok := canonicalProjectSwitches[key]
	return s, ok
}

// looksLikeHeaderLine is the header sniff applied before any section opens.
func looksLikeHeaderLine(line string) bool {
	return strings.Contains(line, "|") &&
		runeLen(line) < 100 &&
		!strings.HasPrefix(line, "-") &&
		!strings.HasPrefix(line, "•") &&
		!strings.HasPrefix(line, "[")
}

// routeCombinedLine sends a line of the combined section to education or
// certifications. Short pipe- or year-bearing lines that follow an education
// entry are treated as its location/year continuation.
func routeCombinedLine(tokens *Tokens, line string) {
	clean := CleanLine(line)
	if clean == "" {
		return
	}
	lower := strings.ToLower(clean)

	if containsAny(lower, educationKeywords) {
		tokens.add(SectionEducation, strings.TrimSuffix(clean, "."))
		return
	}

	edu := tokens.Sections[SectionEducation]
	if len(edu) > 0 &&
		(strings.Contains(clean, "|") || yearPattern.MatchString(clean)) &&
		runeLen(clean) < 50 &&
		!containsAny(lower, certificationKeywords) {
		edu[len(edu)-1] = edu[len(edu)-1] + ", " + clean
		return
	}

	tokens.add(SectionCertifications, strings.TrimSuffix(clean, "."))
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
