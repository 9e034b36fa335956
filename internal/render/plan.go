// Package render lays out a résumé and writes it as a DOCX file.
//
// Rendering happens in two steps. A layout builder (BuildDatamatics,
// BuildModern, BuildStandard) turns content into a Plan: plain structs
// describing margins, runs, paragraphs and regions. WriteDOCX then translates
// the Plan into a Word document with go-docx.
//
// Go Pattern: Keeping the layout as data means tests can check fonts, colours
// and ordering without opening a .docx file, and the go-docx calls stay in
// one place.
package render

import "strings"

// Alignment is a paragraph's horizontal alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignJustify
	AlignRight
)

// Role tags what a paragraph is for. WriteDOCX ignores it; it exists so
// callers and tests can find paragraphs without matching on text.
type Role string

const (
	RoleSectionHeading Role = "section_heading"
	RoleSkillCategory  Role = "skill_category"
	RoleBullet         Role = "bullet"
	RoleEducation      Role = "education"
	RoleSummary        Role = "summary"
	RoleRegionHeading  Role = "region_heading"
	RoleProjectTitle   Role = "project_title"
	RoleCategoryHeader Role = "category_header"
	RoleTechnologies   Role = "technologies"
	RoleSpacer         Role = "spacer"
	RoleName           Role = "name"
	RoleTitle          Role = "title"
	RoleText           Role = "text"
)

// Colors used by the layouts, as RRGGBB hex.
const (
	ColorBlack     = "000000"
	ColorAccent    = "5B9BD5" // header title
	ColorRegionRed = "FF0000" // work-experience heading
)

// Run is a span of text with uniform formatting. Size is in points; zero
// means the plan's base size. Color is RRGGBB; empty means automatic.
type Run struct {
	Text  string
	Bold  bool
	Size  float64
	Color string
}

// Paragraph is one block of runs. Spacing values are points; indents are
// inches. LineSpacing is an exact line height in points, zero for automatic.
type Paragraph struct {
	Role        Role
	Runs        []Run
	Align       Alignment
	SpaceBefore float64
	SpaceAfter  float64
	LineSpacing float64
	Indent      float64
	Hanging     float64
	Bullet      bool // prefix with a bullet glyph and a tab at the hanging indent
}

// Text concatenates the paragraph's runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// PageSetup holds page margins and the header distance, in inches.
type PageSetup struct {
	Top, Right, Bottom, Left float64
	HeaderDistance           float64
}

// HeaderBand is the first-page-only band: "Name | Title" on the left and
// an optional logo pushed to the right margin with a right tab stop. It is
// written as the first block of page one.
type HeaderBand struct {
	Name       string
	Title      string
	Size       float64
	NameColor  string
	TitleColor string
	Logo       []byte  // PNG or JPEG bytes; nil renders no logo
	LogoWidth  float64 // inches
	TabStop    float64 // inches from the left margin
}

// Columns is a borderless single-row two-column table.
type Columns struct {
	LeftWidth  float64 // inches
	RightWidth float64
	Gap        float64 // inches between the columns, as the right column's indent
	Left       []Paragraph
	Right      []Paragraph
}

// Plan is a complete page layout. Regions are emitted in this order:
// Lead, Columns, Merged, Body. Merged is a full-width row appended to the
// Columns table (both cells merged); without Columns it is emitted as flow.
type Plan struct {
	Format   string
	Page     PageSetup
	Font     string
	FontSize float64
	Header   *HeaderBand
	Lead     []Paragraph
	Columns  *Columns
	Merged   []Paragraph
	Body     []Paragraph
}

// Paragraphs returns every paragraph in emit order, for inspection.
func (p *Plan) Paragraphs() []Paragraph {
	var out []Paragraph
	out = append(out, p.Lead...)
	if p.Columns != nil {
		out = append(out, p.Columns.Left...)
		out = append(out, p.Columns.Right...)
	}
	out = append(out, p.Merged...)
	out = append(out, p.Body...)
	return out
}

// ByRole filters paragraphs by role, preserving order.
func ByRole(paragraphs []Paragraph, role Role) []Paragraph {
	var out []Paragraph
	for _, p := range paragraphs {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}
