// modern.go builds the simpler two-column layout: name and title across the
// top, skills and credentials on the left, summary on the right, and work
// history full width below the table.
package render

import (
	"strings"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

// BuildModern lays out a parsed résumé in the modern two-column format.
func BuildModern(model *resume.ContentModel) *Plan {
	plan := &Plan{
		Format:   FormatModern,
		Page:     PageSetup{Top: 0.5, Right: 0.5, Bottom: 0.5, Left: 0.5},
		Font:     baseFont,
		FontSize: baseSize,
	}

	name, title := model.SplitHeader()
	if name != "" {
		plan.Lead = append(plan.Lead, Paragraph{
			Role:       RoleName,
			Runs:       []Run{{Text: name, Bold: true, Size: 20}},
			SpaceAfter: 3,
		})
	}
	if title != "" {
		plan.Lead = append(plan.Lead, Paragraph{
			Role:       RoleTitle,
			Runs:       []Run{{Text: title, Bold: true, Size: 12}},
			SpaceAfter: 6,
		})
	}

	plan.Columns = &Columns{
		LeftWidth:  2.5,
		RightWidth: 4.5,
		Left:       modernLeft(model),
		Right:      modernRight(model),
	}
	plan.Body = modernProjects(model.Projects)
	return plan
}

func modernLeft(model *resume.ContentModel) []Paragraph {
	var out []Paragraph

	if len(model.TechnicalSkills) > 0 {
		out = append(out, sectionHeading("SKILLS", false))
		for _, line := range model.TechnicalSkills {
			category, skills, found := strings.Cut(line, ":")
			if !found {
				out = append(out, bullet(line))
				continue
			}
			out = append(out, Paragraph{
				Role:       RoleSkillCategory,
				Runs:       []Run{{Text: resume.StripMarkdown(category) + ":", Bold: true}},
				SpaceAfter: 2,
			})
			for _, skill := range strings.Split(skills, ",") {
				if skill = strings.TrimSpace(skill); skill != "" {
					out = append(out, bullet(skill))
				}
			}
		}
		out = append(out, spacer(0))
	}

	for _, section := range []struct {
		heading string
		items   []string
	}{
		{"FUNCTIONAL SKILLS", model.FunctionalSkills},
		{"INDUSTRY EXPERIENCE", model.IndustryExperience},
	} {
		if len(section.items) == 0 {
			continue
		}
		out = append(out, sectionHeading(section.heading, false))
		for _, item := range section.items {
			out = append(out, bullet(item))
		}
		out = append(out, spacer(0))
	}

	if len(model.Education) > 0 {
		out = append(out, sectionHeading("EDUCATION", false))
		for _, edu := range model.Education {
			out = append(out, Paragraph{
				Role:       RoleEducation,
				Runs:       []Run{{Text: resume.StripMarkdown(edu), Bold: true}},
				SpaceAfter: 6,
			})
		}
	}

	if len(model.Certifications) > 0 {
		out = append(out, sectionHeading("CERTIFICATIONS", false))
		for _, cert := range model.Certifications {
			out = append(out, Paragraph{
				Role:       RoleText,
				Runs:       []Run{{Text: resume.StripMarkdown(cert), Bold: true}},
				SpaceAfter: 3,
			})
		}
	}
	return out
}

func modernRight(model *resume.ContentModel) []Paragraph {
	if len(model.Summary) == 0 {
		return nil
	}
	return []Paragraph{
		sectionHeading("PROFESSIONAL SUMMARY", false),
		{
			Role:       RoleSummary,
			Runs:       []Run{{Text: resume.StripMarkdown(strings.Join(model.Summary, " "))}},
			SpaceAfter: 12,
		},
	}
}

func modernProjects(projects []resume.ProjectEntry) []Paragraph {
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
		spacer(0),
		{
			Role:       RoleRegionHeading,
			Runs:       []Run{{Text: "PROJECTS EXPERIENCE", Bold: true, Size: 14}},
			SpaceAfter: 12,
		},
	}

	for _, project := range visible {
		runs := []Run{{Text: resume.StripMarkdown(project.Title), Bold: true, Size: 12}}
		for _, extra := range []string{project.Dates, project.Location} {
			if extra = strings.TrimSpace(extra); extra != "" {
				runs = append(runs, Run{Text: " | " + extra})
			}
		}
		out = append(out, Paragraph{Role: RoleProjectTitle, Runs: runs, SpaceAfter: 3})

		for _, resp := range project.Responsibilities {
			if resume.IsCategoryHeader(resp) {
				out = append(out, Paragraph{
					Role:        RoleCategoryHeader,
					Runs:        []Run{{Text: resume.StripMarkdown(resp), Bold: true}},
					SpaceBefore: 6,
					SpaceAfter:  2,
				})
				continue
			}
			out = append(out, bullet(resume.CleanLine(resp)))
		}
		if len(project.Technologies) > 0 {
			out = append(out, Paragraph{
				Role:       RoleTechnologies,
				Runs:       []Run{{Text: "Technologies: " + strings.Join(project.Technologies, ", ")}},
				SpaceAfter: 3,
			})
		}
		out = append(out, spacer(0))
	}
	return out
}
