// structurer.go scans the work-history bucket into ProjectEntry values.
//
// The scanner holds at most one open project. Each line is classified by the
// predicates in predicates.go (first match wins) and either opens a new
// project, updates the open one, or is appended to its responsibilities.
// No line is rejected for being malformed; the worst case is an extra bullet.
package resume

import (
	"strings"
)

// Text must be longer than these lengths to count as a responsibility.
const (
	minBulletLen       = 5
	minContinuationLen = 10
	minShoutedSentence = 15
	longContinuation   = 150
)

type projectScanner struct {
	projects []ProjectEntry
	current  *ProjectEntry
}

// StructureProjects turns raw project-section lines into ordered entries.
func StructureProjects(lines []string) []ProjectEntry {
	s := &projectScanner{}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		s.scan(line)
	}
	s.finalize()
	return s.projects
}

func (s *projectScanner) scan(line string) {
	switch {
	case isCombinedProjectLine(line):
		s.scanCombined(line)
	case isDatesLine(line):
		s.scanDates(line)
	case isTechnologiesLine(line):
		s.scanTechnologies(line)
	case isBulleted(line):
		s.scanBullet(line)
	case IsCategoryHeader(line):
		p := s.ensure()
		p.Responsibilities = append(p.Responsibilities, line)
	default:
		s.scanBare(line)
	}
}

// scanCombined handles "Title / Company | Dates | Location" and
// "Title, Company, Location | Dates".
func (s *projectScanner) scanCombined(line string) {
	entry := ProjectEntry{}

	parts := strings.Split(line, "|")
	if len(parts) >= 2 {
		entry.Title = strings.TrimSpace(parts[0])
		entry.Dates = leadingDatesLabel.ReplaceAllString(strings.TrimSpace(parts[1]), "")
		if len(parts) > 2 {
			entry.Location = strings.TrimSpace(strings.Join(parts[2:], "|"))
		}
	} else {
		// "Title / Company 01/2020 - Present" with no pipe at all.
		dates := dateRangePattern.FindString(line)
		entry.Title = strings.Trim(strings.Replace(line, dates, "", 1), " ,/-–—")
		entry.Dates = dates
	}
	entry.Title = StripMarkdown(entry.Title)
	entry.Dates = strings.TrimSpace(entry.Dates)

	s.finalize()
	s.current = &entry
}

// scanDates merges a separate dates line (and optional "| location") into
// the open project without closing it.
func (s *projectScanner) scanDates(line string) {
	text := strings.TrimSpace(datesLabelPattern.ReplaceAllString(StripMarkdown(line), ""))

	var location string
	if m := trailingLocationSep.FindStringSubmatch(text); m != nil {
		location = strings.TrimSpace(m[1])
		text = strings.TrimSpace(strings.TrimSuffix(text, m[0]))
	}

	p := s.ensure()
	p.Dates = text
	if location != "" {
		p.Location = location
	}
}

// scanTechnologies overwrites the open project's technology list.
func (s *projectScanner) scanTechnologies(line string) {
	text := technologiesLabel.ReplaceAllString(StripMarkdown(StripBullet(line)), "")

	var techs []string
	for _, t := range technologySplitter.Split(text, -1) {
		if t = strings.TrimSpace(t); t != "" {
			techs = append(techs, t)
		}
	}
	s.ensure().Technologies = techs
}

func (s *projectScanner) scanBullet(line string) {
	text := CleanLine(line)
	if runeLen(text) <= minBulletLen || isSectionEcho(text) {
		return
	}
	p := s.ensure()
	p.Responsibilities = append(p.Responsibilities, text)
}

// scanBare decides between a new project title and an unbulleted
// continuation of the open project's responsibilities.
func (s *projectScanner) scanBare(line string) {
	if isSectionBoundary(line) {
		return
	}
	if leadingMonthYear.MatchString(line) {
		s.ensure().Dates = line
		return
	}

	clean := StripMarkdown(line)
	if clean == "" {
		return
	}

	if isShoutedParagraph(clean) {
		p := s.ensure()
		p.Responsibilities = append(p.Responsibilities, sentencesLongerThan(clean, minShoutedSentence-1)...)
		return
	}

	if looksLikeTitle(clean, s.current) {
		s.finalize()
		s.current = &ProjectEntry{Title: clean}
		return
	}

	p := s.ensure()
	if runeLen(clean) > longContinuation {
		p.Responsibilities = append(p.Responsibilities, sentencesLongerThan(clean, minContinuationLen)...)
		return
	}
	if runeLen(clean) > minContinuationLen {
		p.Responsibilities = append(p.Responsibilities, clean)
	}
}

// ensure returns the open project, opening an untitled one if needed.
func (s *projectScanner) ensure() *ProjectEntry {
	if s.current == nil {
		s.current = &ProjectEntry{}
	}
	return s.current
}

// finalize pushes the open project if it has anything worth rendering.
func (s *projectScanner) finalize() {
	if s.current != nil && s.current.HasContent() {
		s.projects = append(s.projects, *s.current)
	}
	s.current = nil
}
