// datamatics.go builds the two-column professional layout: a first-page
// header band, a borderless two-column table for skills and summary, and a
// merged full-width row for work experience.
package render

import (
	"regexp"
	"strings"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

// Fixed measurements for the professional layout. Points unless noted.
const (
	baseFont         = "Calibri"
	baseSize         = 9.0
	headingSize      = 10.0
	headerBandSize   = 14.0
	exactLine        = 11.0
	bulletIndent     = 0.25 // inches
	bulletHanging    = 0.15 // inches
	categoryIndent   = 0.2  // inches
	educationIndent  = 0.3  // inches
	summaryIndent    = 0.1  // inches
	logoWidthInches  = 1.8
	headerTabInches  = 6.7 // right edge of the text area: 8.5in page minus 0.9in margins
	columnWidth      = 3.0 // inches
	columnGapInches  = 0.25
	projectSpacer    = 10.0
	regionLeadSpacer = 8.0
)

var (
	numberingPattern   = regexp.MustCompile(`^\d+\.\s*`)
	datesPrefixPattern = regexp.MustCompile(`(?i)^dates:\s*`)
)

// BuildDatamatics lays out a parsed résumé in the two-column professional
// format. logo may be nil, in which case the header band has no image.
func BuildDatamatics(model *resume.ContentModel, logo []byte) *Plan {
	name, title := model.SplitHeader()

	plan := &Plan{
		Format:   FormatDatamatics,
		Page:     PageSetup{Top: 1.0, Right: 0.9, Bottom: 0.4, Left: 0.9, HeaderDistance: 0.4},
		Font:     baseFont,
		FontSize: baseSize,
		Header: &HeaderBand{
			Name:       name,
			Title:      title,
			Size:       headerBandSize,
			NameColor:  ColorBlack,
			TitleColor: ColorAccent,
			Logo:       logo,
			LogoWidth:  logoWidthInches,
			TabStop:    headerTabInches,
		},
		Columns: &Columns{
			LeftWidth:  columnWidth,
			RightWidth: columnWidth,
			Gap:        columnGapInches,
			Left:       leftColumn(model),
			Right:      rightColumn(model),
		},
	}
	plan.Merged = workExperience(model.Projects)
	return plan
}

// leftColumn renders Technical Skills, Functional Skills and Industry
// Experience, in that order.
func leftColumn(model *resume.ContentModel) []Paragraph {
	var out []Paragraph

	if len(model.TechnicalSkills) > 0 {
		out = append(out, sectionHeading("Technical Skills", true))
		for _, line := range model.TechnicalSkills {
			out = append(out, skillLine(line)...)
		}
		out = append(out, spacer(0))
	}

	if len(model.FunctionalSkills) > 0 {
		out = append(out, sectionHeading("Functional Skills", false))
		for _, skill := range model.FunctionalSkills {
			out = append(out, bullet(skill))
		}
		out = append(out, spacer(0))
	}

	if len(model.IndustryExperience) > 0 {
		out = append(out, sectionHeading("Industry Experience", false))
		for _, industry := range model.IndustryExperience {
			out = append(out, bullet(industry))
		}
		out = append(out, spacer(0))
	}

	return out
}

// rightColumn renders the Summary, then the combined Education /
// Certifications block with certifications first and education last.
func rightColumn(model *resume.ContentModel) []Paragraph {
	var out []Paragraph

	if len(model.Summary) > 0 {
		out = append(out, sectionHeading("Summary", true))
		for _, para := range model.Summary {
			out = append(out, Paragraph{
				Role:        RoleSummary,
				Runs:        []Run{{Text: resume.StripMarkdown(para)}},
				Align:       AlignJustify,
				SpaceAfter:  4,
				LineSpacing: exactLine,
				Indent:      summaryIndent,
			})
		}
		out = append(out, spacer(0))
	}

	if len(model.Certifications) == 0 && len(model.Education) == 0 {
		return out
	}

	out = append(out, sectionHeading("Education/Qualifications/Certifications", false))
	for _, cert := range model.Certifications {
		clean := numberingPattern.ReplaceAllString(resume.StripMarkdown(cert), "")
		if len([]rune(clean)) > 3 {
			out = append(out, bullet(clean))
		}
	}
	if n := len(model.Education); n > 0 {
		edu := numberingPattern.ReplaceAllString(resume.StripMarkdown(model.Education[n-1]), "")
		if len([]rune(edu)) > 5 {
			p := bullet(edu)
			p.Role = RoleEducation
			p.Runs[0].Bold = true
			p.Indent = educationIndent
			p.SpaceAfter = 2
			out = append(out, p)
		}
	}
	out = append(out, spacer(0))
	return out
}

// skillLine renders "Category: a, b" as a bold label plus regular skills.
// Lines without a category become plain bullets.
func skillLine(line string) []Paragraph {
	category, skills, found := strings.Cut(line, ":")
	category = resume.StripMarkdown(category)
	skills = resume.StripMarkdown(skills)

	if !found || category == "" {
		return []Paragraph{bullet(line)}
	}
	if skills == "" {
		return []Paragraph{bullet(category + ":")}
	}
	return []Paragraph{{
		Role: RoleSkillCategory,
		Runs: []Run{
			{Text: category + ": ", Bold: true},
			{Text: skills},
		},
		Align:       AlignLeft,
		LineSpacing: exactLine,
		Indent:      categoryIndent,
		Hanging:     bulletHanging,
		Bullet:      true,
	}}
}

// workExperience renders the merged full-width region. Projects with neither
// a title nor responsibilities are skipped.
func workExperience(projects []resume.ProjectEntry) []Paragraph {
	var visible []resume.ProjectEntry
	for _, p := range projects {
		if p.Title != "" || len(p.Responsibilities) > 0 {
			visible = append(visible, p)
		}
	}
	if len(visible) == 0 {
		return nil
	}

	out := []Paragraph{
		spacer(regionLeadSpacer),
		{
			Role:       RoleRegionHeading,
			Runs:       []Run{{Text: "Work Experience", Bold: true, Size: headingSize, Color: ColorRegionRed}},
			SpaceAfter: 8,
		},
	}

	for i, project := range visible {
		out = append(out, projectBlock(project)...)
		last := i == len(visible)-1
		if !last && (len(project.Responsibilities) > 0 || len(project.Technologies) > 0) {
			out = append(out, spacer(projectSpacer))
		}
	}
	return out
}

func projectBlock(project resume.ProjectEntry) []Paragraph {
	out := []Paragraph{{
		Role:       RoleProjectTitle,
		Runs:       []Run{{Text: ProjectTitleLine(project), Bold: true, Size: headingSize}},
		SpaceAfter: 6,
	}}

	for _, resp := range project.Responsibilities {
		resp = strings.TrimSpace(resp)
		if resume.IsCategoryHeader(resp) {
			out = append(out, Paragraph{
				Role:        RoleCategoryHeader,
				Runs:        []Run{{Text: resume.StripMarkdown(resp), Bold: true, Color: ColorBlack}},
				Align:       AlignLeft,
				SpaceBefore: 8,
				SpaceAfter:  3,
				LineSpacing: exactLine,
			})
			continue
		}
		clean := strings.TrimRight(resume.CleanLine(resp), ".")
		if len([]rune(clean)) > 3 {
			out = append(out, bullet(clean))
		}
	}

	if len(project.Technologies) > 0 {
		out = append(out, Paragraph{
			Role: RoleTechnologies,
			Runs: []Run{
				{Text: "Technologies: "},
				{Text: strings.Join(project.Technologies, ", ")},
			},
			Align:       AlignJustify,
			SpaceBefore: 3,
			SpaceAfter:  3,
			LineSpacing: exactLine,
		})
	}
	return out
}

// ProjectTitleLine composes the upper-case project heading:
//
//	"Role / Company"            -> "ROLE – COMPANY"
//	"Role, Company, Location"   -> "ROLE, COMPANY, LOCATION"
//	anything else               -> upper-cased as is
//
// followed by " | DATES" and, unless the upper-cased title already contains
// the location exactly as written, " | LOCATION". Both suffixes require dates.
func ProjectTitleLine(project resume.ProjectEntry) string {
	title := resume.StripMarkdown(project.Title)
	if title == "" {
		title = "Position / Company"
	}
	location := strings.TrimSpace(project.Location)

	var line string
	switch {
	case strings.Contains(title, " / "):
		role, company, _ := strings.Cut(title, " / ")
		line = strings.ToUpper(strings.TrimSpace(role))
		if company = strings.TrimSpace(company); company != "" {
			line += " – " + strings.ToUpper(company)
		}
	case strings.Contains(title, ",") && location == "":
		parts := strings.Split(title, ",")
		if len(parts) > 3 {
			parts = parts[:3]
		}
		for i := range parts {
			parts[i] = strings.ToUpper(strings.TrimSpace(parts[i]))
		}
		line = strings.Join(parts, ", ")
	default:
		line = strings.ToUpper(title)
	}

	dates := strings.TrimSpace(datesPrefixPattern.ReplaceAllString(strings.TrimSpace(project.Dates), ""))
	if dates == "" {
		return line
	}
	line += " | " + strings.ToUpper(dates)
	if location != "" && !strings.Contains(strings.ToUpper(title), location) {
		line += " | " + strings.ToUpper(location)
	}
	return line
}

func sectionHeading(text string, first bool) Paragraph {
	before := 6.0
	if first {
		before = 0
	}
	return Paragraph{
		Role:        RoleSectionHeading,
		Runs:        []Run{{Text: text, Bold: true, Size: headingSize}},
		Align:       AlignLeft,
		SpaceBefore: before,
		SpaceAfter:  3,
	}
}

func bullet(text string) Paragraph {
	return Paragraph{
		Role:        RoleBullet,
		Runs:        []Run{{Text: resume.StripMarkdown(text)}},
		Align:       AlignJustify,
		SpaceAfter:  3,
		LineSpacing: exactLine,
		Indent:      bulletIndent,
		Hanging:     bulletHanging,
		Bullet:      true,
	}
}

func spacer(after float64) Paragraph {
	return Paragraph{Role: RoleSpacer, SpaceAfter: after}
}
