// render_test.go checks the layout plans and the DOCX writer.
//
// Go Pattern: Most assertions run against the Plan rather than the .docx
// bytes, so a test failure points at the layout rule that broke.
package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fumiama/go-docx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

const janeDoe = "[HEADER]\nJane Doe | QA Lead\n\n[LEFT_COLUMN_START]\nTechnical Skills:\nCloud: AWS, Azure\n[LEFT_COLUMN_END]\n\n[PROJECTS_EXPERIENCE]\nQA Lead / Acme | 01/2019 – 01/2021\n- Led testing efforts across three teams.\nTechnologies: Selenium, JIRA"

type staticLogo struct {
	data []byte
	ok   bool
}

func (s staticLogo) Logo(context.Context) ([]byte, bool) { return s.data, s.ok }

func TestBuildDatamatics_EndToEnd(t *testing.T) {
	plan := BuildDatamatics(resume.Parse(janeDoe), nil)

	require.NotNil(t, plan.Header)
	assert.Equal(t, "Jane Doe", plan.Header.Name)
	assert.Equal(t, "QA Lead", plan.Header.Title)
	assert.Equal(t, ColorBlack, plan.Header.NameColor)
	assert.Equal(t, ColorAccent, plan.Header.TitleColor)
	assert.Equal(t, headerBandSize, plan.Header.Size)
	assert.Nil(t, plan.Header.Logo)

	require.NotNil(t, plan.Columns)
	skills := ByRole(plan.Columns.Left, RoleSkillCategory)
	require.Len(t, skills, 1)
	require.Len(t, skills[0].Runs, 2)
	assert.Equal(t, "Cloud: ", skills[0].Runs[0].Text)
	assert.True(t, skills[0].Runs[0].Bold)
	assert.Equal(t, "AWS, Azure", skills[0].Runs[1].Text)
	assert.False(t, skills[0].Runs[1].Bold)
	assert.Empty(t, plan.Columns.Right)

	heading := ByRole(plan.Merged, RoleRegionHeading)
	require.Len(t, heading, 1)
	assert.Equal(t, "Work Experience", heading[0].Text())
	assert.Equal(t, ColorRegionRed, heading[0].Runs[0].Color)

	titles := ByRole(plan.Merged, RoleProjectTitle)
	require.Len(t, titles, 1)
	assert.Equal(t, "QA LEAD – ACME | 01/2019 – 01/2021", titles[0].Text())

	bullets := ByRole(plan.Merged, RoleBullet)
	require.Len(t, bullets, 1)
	assert.Equal(t, "Led testing efforts across three teams", bullets[0].Text())

	tech := ByRole(plan.Merged, RoleTechnologies)
	require.Len(t, tech, 1)
	assert.Equal(t, "Technologies: Selenium, JIRA", tech[0].Text())
}

func TestBuildDatamatics_RightColumn(t *testing.T) {
	model := &resume.ContentModel{
		Summary:        []string{"First paragraph.", "Second paragraph."},
		Certifications: []string{"1. ISTQB Foundation", "AB"},
		Education:      []string{"BSc Physics, Pune | 2012"},
	}
	plan := BuildDatamatics(model, []byte("logo"))

	right := plan.Columns.Right
	headings := ByRole(right, RoleSectionHeading)
	require.Len(t, headings, 2)
	assert.Equal(t, "Summary", headings[0].Text())
	assert.Equal(t, "Education/Qualifications/Certifications", headings[1].Text())

	summary := ByRole(right, RoleSummary)
	require.Len(t, summary, 2)
	assert.Equal(t, AlignJustify, summary[0].Align)

	certs := ByRole(right, RoleBullet)
	require.Len(t, certs, 1, "short certifications are dropped")
	assert.Equal(t, "ISTQB Foundation", certs[0].Text())

	edu := ByRole(right, RoleEducation)
	require.Len(t, edu, 1)
	assert.True(t, edu[0].Runs[0].Bold)
	assert.Equal(t, educationIndent, edu[0].Indent)

	assert.Equal(t, []byte("logo"), plan.Header.Logo)
	assert.Empty(t, plan.Merged)
}

func TestWorkExperience_SkipsEmptyProjectsAndSpacesBetween(t *testing.T) {
	projects := []resume.ProjectEntry{
		{Title: "Lead / Acme", Responsibilities: []string{"Did the thing well"}},
		{Technologies: []string{"Go"}},
		{Title: "Engineer / Beta", Responsibilities: []string{"Built the other thing"}},
	}
	out := workExperience(projects)

	assert.Len(t, ByRole(out, RoleProjectTitle), 2)
	// lead spacer plus one between the two visible projects
	spacers := ByRole(out, RoleSpacer)
	require.Len(t, spacers, 2)
	assert.Equal(t, regionLeadSpacer, spacers[0].SpaceAfter)
	assert.Equal(t, projectSpacer, spacers[1].SpaceAfter)

	assert.Nil(t, workExperience([]resume.ProjectEntry{{Technologies: []string{"Go"}}}))
}

func TestProjectBlock_CategoryHeaders(t *testing.T) {
	project := resume.ProjectEntry{
		Title:            "Lead / Acme",
		Responsibilities: []string{"Quality Engineering:", "- Wrote test plans.", "ok."},
	}
	out := projectBlock(project)

	headers := ByRole(out, RoleCategoryHeader)
	require.Len(t, headers, 1)
	assert.Equal(t, "Quality Engineering:", headers[0].Text())
	assert.Equal(t, 8.0, headers[0].SpaceBefore)

	bullets := ByRole(out, RoleBullet)
	require.Len(t, bullets, 1)
	assert.Equal(t, "Wrote test plans", bullets[0].Text())
}

func TestProjectTitleLine(t *testing.T) {
	tests := []struct {
		name     string
		project  resume.ProjectEntry
		expected string
	}{
		{
			name:     "role and company",
			project:  resume.ProjectEntry{Title: "QA Lead / Acme", Dates: "01/2019 – 01/2021"},
			expected: "QA LEAD – ACME | 01/2019 – 01/2021",
		},
		{
			name:     "comma title without location",
			project:  resume.ProjectEntry{Title: "Engineer, Acme, Pune", Dates: "2020 - 2021"},
			expected: "ENGINEER, ACME, PUNE | 2020 - 2021",
		},
		{
			name:     "location appended",
			project:  resume.ProjectEntry{Title: "Engineer / Acme", Dates: "Dates: 2020", Location: "Pune"},
			expected: "ENGINEER – ACME | 2020 | PUNE",
		},
		{
			name:     "location already in title",
			project:  resume.ProjectEntry{Title: "Engineer at Acme Pune", Dates: "2020", Location: "PUNE"},
			expected: "ENGINEER AT ACME PUNE | 2020",
		},
		{
			name:     "mixed-case location is not matched against the title",
			project:  resume.ProjectEntry{Title: "Remote Engineer / Acme", Dates: "2020", Location: "Remote"},
			expected: "REMOTE ENGINEER – ACME | 2020 | REMOTE",
		},
		{
			name:     "no dates drops location",
			project:  resume.ProjectEntry{Title: "Engineer", Location: "Pune"},
			expected: "ENGINEER",
		},
		{
			name:     "missing title",
			project:  resume.ProjectEntry{Dates: "2020"},
			expected: "POSITION – COMPANY | 2020",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProjectTitleLine(tt.project))
		})
	}
}

func TestBuildModern(t *testing.T) {
	plan := BuildModern(resume.Parse(janeDoe))

	require.Len(t, plan.Lead, 2)
	assert.Equal(t, "Jane Doe", plan.Lead[0].Text())
	assert.Equal(t, 20.0, plan.Lead[0].Runs[0].Size)
	assert.Equal(t, "QA Lead", plan.Lead[1].Text())

	left := plan.Columns.Left
	assert.Equal(t, "SKILLS", left[0].Text())
	cats := ByRole(left, RoleSkillCategory)
	require.Len(t, cats, 1)
	assert.Equal(t, "Cloud:", cats[0].Text())
	bullets := ByRole(left, RoleBullet)
	require.Len(t, bullets, 2)
	assert.Equal(t, "AWS", bullets[0].Text())
	assert.Equal(t, "Azure", bullets[1].Text())

	titles := ByRole(plan.Body, RoleProjectTitle)
	require.Len(t, titles, 1)
	assert.Equal(t, "QA Lead / Acme | 01/2019 – 01/2021", titles[0].Text())
	assert.Empty(t, plan.Merged)
}

func TestBuildStandard(t *testing.T) {
	text := "# Jane Doe\n\nPROFESSIONAL SUMMARY\n---\nI test **software**.\nWork Experience\nAcme, 2019"
	plan := BuildStandard(FormatTraditional, text)

	headings := ByRole(plan.Body, RoleSectionHeading)
	require.Len(t, headings, 3)
	assert.Equal(t, "Jane Doe", headings[0].Text())
	assert.Equal(t, "PROFESSIONAL SUMMARY", headings[1].Text())
	assert.Equal(t, "Work Experience", headings[2].Text())

	texts := ByRole(plan.Body, RoleText)
	require.Len(t, texts, 2)
	assert.Equal(t, "I test software.", texts[0].Text())
	assert.Nil(t, plan.Columns)
}

func TestBuildStandardSkipsMarkers(t *testing.T) {
	text := "[HEADER]\nJane Doe | QA Lead\n[LEFT_COLUMN_START]\n[Draft]\n"
	plan := BuildStandard(FormatATS, text)

	require.Len(t, plan.Body, 2)
	assert.Equal(t, "Jane Doe | QA Lead", plan.Body[0].Text())
	assert.Equal(t, "[Draft]", plan.Body[1].Text())
}

func TestIsHeading(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"## Anything", true},
		{"EDUCATION", true},
		{"Technical Skills", true},
		{"education details for the candidate", false},
		{"Led the experience redesign", false},
		{"Acme Corp", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsHeading(tt.line))
		})
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "datamatics", expected: FormatDatamatics},
		{input: " Modern ", expected: FormatModern},
		{input: "two-column", expected: FormatModern},
		{input: "ATS-Friendly", expected: FormatATS},
		{input: "fancy", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := Lookup(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f.ID)
		})
	}

	assert.Len(t, Formats(), 6)
}

func TestRenderer_PlanRouting(t *testing.T) {
	r := NewRenderer(staticLogo{data: []byte("png"), ok: true})
	ctx := context.Background()

	plan, model, err := r.Plan(ctx, "datamatics", janeDoe)
	require.NoError(t, err)
	assert.Equal(t, FormatDatamatics, plan.Format)
	assert.Equal(t, []byte("png"), plan.Header.Logo)
	require.NotNil(t, model)
	assert.Equal(t, "Jane Doe | QA Lead", model.Header)

	plan, _, err = r.Plan(ctx, "two-column", janeDoe)
	require.NoError(t, err)
	assert.Equal(t, FormatModern, plan.Format)

	plan, model, err = r.Plan(ctx, "academic", "EDUCATION\nPhD")
	require.NoError(t, err)
	assert.Equal(t, FormatAcademic, plan.Format)
	assert.Nil(t, model)

	_, _, err = r.Plan(ctx, "nope", janeDoe)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	plan, _, err = NewRenderer(staticLogo{}).Plan(ctx, "datamatics", janeDoe)
	require.NoError(t, err)
	assert.Nil(t, plan.Header.Logo)
}

func TestLogoSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logo.png" {
			_, _ = w.Write([]byte("remote"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	local := filepath.Join(t.TempDir(), "logo.png")
	require.NoError(t, os.WriteFile(local, []byte("local"), 0o600))
	missing := filepath.Join(t.TempDir(), "missing.png")

	tests := []struct {
		name     string
		path     string
		url      string
		expected []byte
		ok       bool
	}{
		{name: "local file wins", path: local, url: server.URL + "/logo.png", expected: []byte("local"), ok: true},
		{name: "falls back to remote", path: missing, url: server.URL + "/logo.png", expected: []byte("remote"), ok: true},
		{name: "remote error", path: missing, url: server.URL + "/gone.png", ok: false},
		{name: "no sources", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewLogoSource(tt.path, tt.url, 2*time.Second)
			data, ok := src.Logo(context.Background())
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, data)
		})
	}
}

func TestHexColor(t *testing.T) {
	_, ok := hexColor(ColorAccent)
	assert.True(t, ok)
	_, ok = hexColor("")
	assert.False(t, ok)
	_, ok = hexColor("ZZZZZZ")
	assert.False(t, ok)
}

// pngLogo encodes a 2x1 image, enough for go-docx to size the drawing.
func pngLogo(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 0x5B, G: 0x9B, B: 0xD5, A: 0xFF})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func renderAndParse(t *testing.T, r *Renderer, format string) *docx.Docx {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), &buf, format, janeDoe))
	doc, err := docx.Parse(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	return doc
}

func runs(p *docx.Paragraph) []*docx.Run {
	var out []*docx.Run
	for _, child := range p.Children {
		if run, ok := child.(*docx.Run); ok {
			out = append(out, run)
		}
	}
	return out
}

func runText(run *docx.Run) string {
	var b strings.Builder
	for _, child := range run.Children {
		if t, ok := child.(*docx.Text); ok {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

func paragraphTexts(p *docx.Paragraph) string {
	var b strings.Builder
	for _, run := range runs(p) {
		b.WriteString(runText(run))
	}
	return b.String()
}

func cellTexts(cell *docx.WTableCell) []string {
	var out []string
	for _, p := range cell.Paragraphs {
		out = append(out, paragraphTexts(p))
	}
	return out
}

func TestWriteDOCX_Datamatics(t *testing.T) {
	doc := renderAndParse(t, NewRenderer(staticLogo{data: pngLogo(t), ok: true}), FormatDatamatics)
	items := doc.Document.Body.Items
	require.NotEmpty(t, items)

	band, ok := items[0].(*docx.Paragraph)
	require.True(t, ok, "header band must be the first block")
	bandRuns := runs(band)
	require.GreaterOrEqual(t, len(bandRuns), 3)

	assert.Equal(t, "Jane Doe | ", runText(bandRuns[0]))
	require.NotNil(t, bandRuns[0].RunProperties.Bold)
	require.NotNil(t, bandRuns[0].RunProperties.Color)
	assert.Equal(t, strings.ToUpper(ColorBlack), bandRuns[0].RunProperties.Color.Val)

	assert.Equal(t, "QA Lead", runText(bandRuns[1]))
	require.NotNil(t, bandRuns[1].RunProperties.Color)
	assert.Equal(t, strings.ToUpper(ColorAccent), bandRuns[1].RunProperties.Color.Val)
	require.NotNil(t, bandRuns[1].RunProperties.Size)
	assert.Equal(t, halfPoints(headerBandSize), bandRuns[1].RunProperties.Size.Val)

	var hasDrawing bool
	for _, child := range bandRuns[len(bandRuns)-1].Children {
		if _, ok := child.(*docx.Drawing); ok {
			hasDrawing = true
		}
	}
	assert.True(t, hasDrawing, "logo drawing missing from the header band")

	var table *docx.Table
	for _, item := range items {
		if tbl, ok := item.(*docx.Table); ok {
			table = tbl
			break
		}
	}
	require.NotNil(t, table, "two-column table missing")
	require.NotNil(t, table.TableProperties.TableBorders)
	require.NotNil(t, table.TableProperties.TableBorders.InsideV)
	assert.Equal(t, "none", table.TableProperties.TableBorders.InsideV.Val)

	require.Len(t, table.TableRows, 2)
	require.Len(t, table.TableRows[0].TableCells, 2)
	assert.Contains(t, strings.Join(cellTexts(table.TableRows[0].TableCells[0]), "\n"), "AWS, Azure")

	require.Len(t, table.TableRows[1].TableCells, 1)
	merged := table.TableRows[1].TableCells[0]
	require.NotNil(t, merged.TableCellProperties)
	require.NotNil(t, merged.TableCellProperties.GridSpan)
	assert.Equal(t, 2, merged.TableCellProperties.GridSpan.Val)

	texts := cellTexts(merged)
	assert.Contains(t, texts, "Work Experience")
	assert.Contains(t, texts, "QA LEAD – ACME | 01/2019 – 01/2021")
	assert.Contains(t, texts, "Technologies: Selenium, JIRA")

	_, ok = items[len(items)-1].(*docx.SectPr)
	assert.True(t, ok, "sectPr must close the body")
}

func TestWriteDOCX_OtherFormats(t *testing.T) {
	r := NewRenderer(nil)

	for _, format := range []string{FormatModern, FormatCreative} {
		t.Run(format, func(t *testing.T) {
			doc := renderAndParse(t, r, format)

			var text strings.Builder
			for _, item := range doc.Document.Body.Items {
				switch el := item.(type) {
				case *docx.Paragraph:
					text.WriteString(paragraphTexts(el))
				case *docx.Table:
					for _, row := range el.TableRows {
						for _, cell := range row.TableCells {
							text.WriteString(strings.Join(cellTexts(cell), "\n"))
						}
					}
				}
			}
			assert.Contains(t, text.String(), "Selenium")
		})
	}
}

func TestWriteDOCX_BadLogoStillRenders(t *testing.T) {
	doc := renderAndParse(t, NewRenderer(staticLogo{data: []byte("not an image"), ok: true}), FormatDatamatics)

	band, ok := doc.Document.Body.Items[0].(*docx.Paragraph)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe | QA Lead", paragraphTexts(band))
}
