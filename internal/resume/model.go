// Package resume turns marker-annotated résumé text into a typed ContentModel.
//
// The pipeline runs in strict stages: Tokenize splits the blob into section
// buckets, the normalizer cleans each flat section, and the structurer scans
// the work-history bucket into ProjectEntry values. None of these stages ever
// fail on malformed input; the worst case is an empty field or a bullet that
// lands on the wrong project.
//
// Go Pattern: Every function in this package is pure (string in, struct out),
// so it is safe to call from any number of request goroutines at once.
package resume

import "strings"

// ContentModel is the structured résumé consumed by the renderer.
type ContentModel struct {
	Header             string         `json:"header"`
	TechnicalSkills    []string       `json:"technical_skills"`
	IndustryExperience []string       `json:"industry_experience"`
	FunctionalSkills   []string       `json:"functional_skills"`
	Education          []string       `json:"education"` // at most one entry: the last one seen
	Certifications     []string       `json:"certifications"`
	Summary            []string       `json:"summary"`
	Projects           []ProjectEntry `json:"projects"`
}

// ProjectEntry is one work-history block.
//
// Responsibilities mixes plain bullet text and category headers such as
// "ETL Development:". They are told apart at render time with IsCategoryHeader.
type ProjectEntry struct {
	Title            string   `json:"title"`
	Dates            string   `json:"dates"`
	Location         string   `json:"location,omitempty"`
	Responsibilities []string `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
}

// HasContent reports whether the project is worth emitting.
func (p ProjectEntry) HasContent() bool {
	return p.Title != "" || len(p.Responsibilities) > 0 || len(p.Technologies) > 0
}

// SetEducation replaces the education entry. Earlier entries are discarded.
func (m *ContentModel) SetEducation(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	m.Education = []string{entry}
}

// SplitHeader splits a "Name | Title" header line into its two halves.
// A header without a pipe is all name.
func (m *ContentModel) SplitHeader() (name, title string) {
	header := StripMarkdown(m.Header)
	if header == "" {
		return "", ""
	}
	parts := strings.SplitN(header, "|", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		title = strings.TrimSpace(parts[1])
	}
	return name, title
}

// IsEmpty reports whether parsing produced nothing renderable.
func (m *ContentModel) IsEmpty() bool {
	return m.Header == "" &&
		len(m.TechnicalSkills) == 0 &&
		len(m.IndustryExperience) == 0 &&
		len(m.FunctionalSkills) == 0 &&
		len(m.Education) == 0 &&
		len(m.Certifications) == 0 &&
		len(m.Summary) == 0 &&
		len(m.Projects) == 0
}
