package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// cellSeparator joins the cells of one table row into a single line.
const cellSeparator = " | "

// DOCX extracts text in document order: one line per body paragraph and one
// line per table row, with the row's cells joined by " | ". When go-docx
// cannot open the file or finds no text, the raw XML reader is tried.
func DOCX(data []byte) (*Result, error) {
	text, err := readDOCX(data)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Warn().Err(err).Msg("go-docx could not read docx, using xml fallback")
		}
		text, err = readDOCXFallback(data)
		if err != nil {
			return nil, err
		}
	}
	return &Result{Kind: KindDOCX, Text: strings.TrimSpace(text)}, nil
}

// ValidateDOCX checks for the zip local-file-header magic that every Office
// Open XML package starts with.
func ValidateDOCX(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], []byte("PK\x03\x04"))
}

func readDOCX(data []byte) (string, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(err, "open docx")
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		switch el := item.(type) {
		case *docx.Paragraph:
			if t := paragraphText(el); t != "" {
				lines = append(lines, t)
			}
		case *docx.Table:
			lines = append(lines, tableRows(el)...)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// tableRows flattens each row to one line. Nested tables are folded into
// the cell that holds them.
func tableRows(table *docx.Table) []string {
	var rows []string
	for _, row := range table.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			var parts []string
			for _, p := range cell.Paragraphs {
				if t := paragraphText(p); t != "" {
					parts = append(parts, t)
				}
			}
			for _, nested := range cell.Tables {
				parts = append(parts, tableRows(nested)...)
			}
			if len(parts) > 0 {
				cells = append(cells, strings.Join(parts, " "))
			}
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, cellSeparator))
		}
	}
	return rows
}

func paragraphText(p *docx.Paragraph) string {
	var b strings.Builder
	for _, child := range p.Children {
		switch c := child.(type) {
		case *docx.Run:
			runText(&b, c)
		case *docx.Hyperlink:
			runText(&b, &c.Run)
		}
	}
	return strings.TrimSpace(b.String())
}

func runText(b *strings.Builder, run *docx.Run) {
	for _, child := range run.Children {
		switch c := child.(type) {
		case *docx.Text:
			b.WriteString(c.Text)
		case *docx.Tab:
			b.WriteByte('\t')
		}
	}
}

// readDOCXFallback walks word/document.xml directly, keeping paragraph and
// table-row boundaries in document order.
func readDOCXFallback(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.Wrap(ErrInvalidFile, err.Error())
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.Wrap(ErrInvalidFile, "word/document.xml not found")
	}

	rc, err := body.Open()
	if err != nil {
		return "", errors.Wrap(err, "open document.xml")
	}
	defer rc.Close()

	var (
		lines     []string
		cells     []string
		para      strings.Builder
		cell      strings.Builder
		cellDepth int
	)
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "parse document.xml")
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				var content string
				if err := decoder.DecodeElement(&content, &el); err == nil {
					para.WriteString(content)
				}
			case "tab":
				para.WriteString("\t")
			case "tc":
				cellDepth++
				cell.Reset()
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				text := strings.TrimSpace(para.String())
				para.Reset()
				if text == "" {
					continue
				}
				if cellDepth > 0 {
					if cell.Len() > 0 {
						cell.WriteString(" ")
					}
					cell.WriteString(text)
				} else {
					lines = append(lines, text)
				}
			case "tc":
				cellDepth--
				if text := strings.TrimSpace(cell.String()); text != "" {
					cells = append(cells, text)
				}
				cell.Reset()
			case "tr":
				if len(cells) > 0 {
					lines = append(lines, strings.Join(cells, cellSeparator))
				}
				cells = nil
			}
		}
	}
	return strings.Join(lines, "\n"), nil
}
