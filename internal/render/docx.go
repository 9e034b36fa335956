// docx.go translates a Plan into a Word document with go-docx.
//
// All go-docx calls live in this file. Measurements in the Plan are plain
// float64 inches and points; they are converted to twips, half-points and
// EMUs here.
package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	bulletGlyph = "•"

	twipsPerInch  = 1440
	twipsPerPoint = 20
	emuPerInch    = 914400

	// US Letter, in twips.
	pageWidth  = 12240
	pageHeight = 15840
)

// WriteDOCX renders plan as a .docx into w.
//
// The header band is the first block of the body, so it only ever appears
// on page one. go-docx has no after-paragraph spacing, so each paragraph's
// SpaceAfter is added to the SpaceBefore of the paragraph that follows it
// in the same flow.
func WriteDOCX(w io.Writer, plan *Plan) error {
	wr := &docWriter{doc: docx.New().WithDefaultTheme(), plan: plan}

	if plan.Header != nil {
		wr.headerBand()
	}
	wr.flow(plan.Lead)
	if plan.Columns != nil {
		wr.columns()
	} else {
		wr.flow(plan.Merged)
	}
	wr.flow(plan.Body)

	// sectPr must be the last child of the body.
	wr.doc.Document.Body.Items = append(wr.doc.Document.Body.Items, sectionProperties(plan.Page))

	if _, err := wr.doc.WriteTo(w); err != nil {
		return errors.Wrap(err, "save docx")
	}
	return nil
}

type docWriter struct {
	doc  *docx.Docx
	plan *Plan

	// carry is the SpaceAfter of the last paragraph in the body flow.
	carry float64
}

func sectionProperties(page PageSetup) *docx.SectPr {
	return &docx.SectPr{
		PgSz: &docx.PgSz{W: pageWidth, H: pageHeight},
		PgMar: &docx.PgMar{
			Top:    int(inchesToTwips(page.Top)),
			Right:  int(inchesToTwips(page.Right)),
			Bottom: int(inchesToTwips(page.Bottom)),
			Left:   int(inchesToTwips(page.Left)),
			Header: int(inchesToTwips(page.HeaderDistance)),
			Footer: int(inchesToTwips(page.HeaderDistance)),
		},
	}
}

// headerBand writes "Name | Title" with the logo pushed to a right tab stop.
func (wr *docWriter) headerBand() {
	band := wr.plan.Header
	if band.Name == "" && len(band.Logo) == 0 {
		return
	}

	para := wr.doc.AddParagraph()
	props := &docx.ParagraphProperties{Justification: &docx.Justification{Val: "left"}}
	if band.TabStop > 0 {
		props.Tabs = &docx.Tabs{Tabs: []*docx.Tab{{Val: "right", Position: int(inchesToTwips(band.TabStop))}}}
	}
	para.Properties = props

	if band.Name != "" {
		nameText := band.Name
		if band.Title != "" {
			nameText += " | "
		}
		wr.run(para, Run{Text: nameText, Bold: true, Size: band.Size, Color: band.NameColor})
		if band.Title != "" {
			wr.run(para, Run{Text: band.Title, Bold: true, Size: band.Size, Color: band.TitleColor})
		}
	}

	if len(band.Logo) > 0 {
		if err := addLogo(para, band); err != nil {
			log.Warn().Err(err).Msg("logo could not be embedded, rendering header without it")
		}
	}
}

func addLogo(para *docx.Paragraph, band *HeaderBand) error {
	run, err := para.AddInlineDrawing(band.Logo)
	if err != nil {
		return errors.Wrap(err, "embed logo")
	}

	drawing, ok := run.Children[0].(*docx.Drawing)
	if ok && drawing.Inline != nil && drawing.Inline.Extent != nil && drawing.Inline.Extent.CX > 0 {
		extent := drawing.Inline.Extent
		width := int64(band.LogoWidth * emuPerInch)
		drawing.Inline.Size(width, width*extent.CY/extent.CX)
	}
	// The tab moves the logo to the right-aligned stop.
	run.Children = append([]interface{}{&docx.Tab{}}, run.Children...)
	return nil
}

// columns emits the borderless two-column table, plus a merged full-width
// row when the plan has one.
func (wr *docWriter) columns() {
	cols := wr.plan.Columns
	left, right := inchesToTwips(cols.LeftWidth), inchesToTwips(cols.RightWidth)

	rows := []int64{0}
	if len(wr.plan.Merged) > 0 {
		rows = append(rows, 0)
	}
	table := wr.doc.AddTableTwips(rows, []int64{left, right}, left+right, nil)
	table.TableProperties.Width = &docx.WTableWidth{W: left + right, Type: "dxa"}
	table.TableProperties.TableBorders = noBorders()

	cells := table.TableRows[0].TableCells
	wr.fillCell(cells[0], cols.Left, 0)
	// go-docx has no cell margins; the gap becomes the right column's indent.
	wr.fillCell(cells[1], cols.Right, cols.Gap)

	if len(wr.plan.Merged) > 0 {
		row := table.TableRows[1]
		merged := row.TableCells[0]
		merged.TableCellProperties.TableCellWidth = &docx.WTableCellWidth{W: left + right, Type: "dxa"}
		merged.TableCellProperties.GridSpan = &docx.WGridSpan{Val: 2}
		row.TableCells = row.TableCells[:1]
		wr.fillCell(merged, wr.plan.Merged, 0)
	}
	wr.carry = 0
}

func noBorders() *docx.WTableBorders {
	none := func() *docx.WTableBorder { return &docx.WTableBorder{Val: "none"} }
	return &docx.WTableBorders{
		Top: none(), Left: none(), Bottom: none(), Right: none(),
		InsideH: none(), InsideV: none(),
	}
}

// fillCell writes paragraphs into a table cell. Word requires every cell to
// hold at least one paragraph.
func (wr *docWriter) fillCell(cell *docx.WTableCell, paragraphs []Paragraph, indent float64) {
	if len(paragraphs) == 0 {
		cell.AddParagraph()
		return
	}
	var carry float64
	for _, p := range paragraphs {
		p.Indent += indent
		wr.paragraph(cell.AddParagraph(), p, carry)
		carry = p.SpaceAfter
	}
}

func (wr *docWriter) flow(paragraphs []Paragraph) {
	for _, p := range paragraphs {
		wr.paragraph(wr.doc.AddParagraph(), p, wr.carry)
		wr.carry = p.SpaceAfter
	}
}

func (wr *docWriter) paragraph(para *docx.Paragraph, p Paragraph, carried float64) {
	spacing := &docx.Spacing{Before: int(pointsToTwips(p.SpaceBefore + carried))}
	if p.LineSpacing > 0 {
		spacing.Line = int(pointsToTwips(p.LineSpacing))
		spacing.LineRule = "exact"
	}
	props := &docx.ParagraphProperties{
		Spacing:       spacing,
		Justification: &docx.Justification{Val: justification(p.Align)},
	}
	if p.Indent > 0 || p.Hanging > 0 {
		props.Ind = &docx.Ind{Left: int(inchesToTwips(p.Indent)), Hanging: int(inchesToTwips(p.Hanging))}
	}
	para.Properties = props

	if p.Bullet {
		wr.run(para, Run{Text: bulletGlyph}).AddTab()
	}
	for _, r := range p.Runs {
		wr.run(para, r)
	}
}

func justification(a Alignment) string {
	switch a {
	case AlignJustify:
		return "both"
	case AlignRight:
		return "right"
	}
	return "left"
}

// run adds text with its formatting. Font family and size fall back to the
// plan's base font.
func (wr *docWriter) run(para *docx.Paragraph, r Run) *docx.Run {
	run := para.AddText(r.Text)
	for _, child := range run.Children {
		// Word drops leading and trailing spaces unless told to keep them.
		if t, ok := child.(*docx.Text); ok {
			t.XMLSpace = "preserve"
		}
	}

	font := wr.plan.Font
	run.Font(font, font, font, "")
	size := r.Size
	if size == 0 {
		size = wr.plan.FontSize
	}
	run.Size(halfPoints(size))
	if r.Bold {
		run.Bold()
	}
	if c, ok := hexColor(r.Color); ok {
		run.Color(c)
	}
	return run
}

// hexColor normalizes an RRGGBB string.
func hexColor(hex string) (string, bool) {
	if len(hex) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", false
	}
	return strings.ToUpper(hex), true
}

func halfPoints(size float64) string {
	return strconv.Itoa(int(size*2 + 0.5))
}

func inchesToTwips(v float64) int64 {
	return int64(v*twipsPerInch + 0.5)
}

func pointsToTwips(v float64) int64 {
	return int64(v*twipsPerPoint + 0.5)
}
