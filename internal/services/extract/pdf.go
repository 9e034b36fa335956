package extract

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// PDF extracts the text of every page, one page after another.
//
// Go Pattern: We accept a byte slice instead of a filename because the data
// comes from an HTTP upload. The pdf library needs an io.ReaderAt for random
// access, which bytes.Reader provides.
func PDF(data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "open pdf")
	}

	pageCount := reader.NumPage()
	var text strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only pages have no text layer; skip them.
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		text.WriteString(strings.TrimSpace(pageText))
	}

	return &Result{
		Kind:      KindPDF,
		Text:      strings.TrimSpace(text.String()),
		PageCount: pageCount,
	}, nil
}

// ValidatePDF checks the "%PDF-" magic bytes.
func ValidatePDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
