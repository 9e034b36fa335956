// Package extract pulls plain text out of uploaded résumé files.
//
// PDF text comes from ledongthuc/pdf, a pure Go reader. DOCX text comes from
// go-docx, with a zip/XML reader as a fallback for documents go-docx
// refuses to open.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Input-format errors. Handlers map all three to 400.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidFile       = errors.New("file content does not match its extension")
	ErrEmptyText         = errors.New("no text could be extracted from the file")
)

// Kind names the detected document type.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// Result holds the output of a text extraction.
type Result struct {
	Kind      Kind
	Text      string
	PageCount int // zero for DOCX, which has no fixed pagination
	WordCount int
}

// SupportedExtensions lists the accepted upload extensions.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".doc"}
}

// Extract detects the file type from its name, checks the magic bytes and
// returns the document's text.
//
// Go Pattern: errors.Wrap keeps the sentinel reachable through errors.Is
// while adding the detail callers log.
func Extract(filename string, data []byte) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		result *Result
		err    error
	)
	switch ext {
	case ".pdf":
		if !ValidatePDF(data) {
			return nil, errors.Wrap(ErrInvalidFile, "missing %PDF- header")
		}
		result, err = PDF(data)
	case ".docx", ".doc":
		// Legacy binary .doc files are not readable; a .doc that is really
		// an Office Open XML package is.
		if !ValidateDOCX(data) {
			return nil, errors.Wrapf(ErrInvalidFile, "%s is not an Office Open XML document", ext)
		}
		result, err = DOCX(data)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(result.Text) == "" {
		return nil, ErrEmptyText
	}
	result.WordCount = countWords(result.Text)
	return result, nil
}

// IsInputError reports whether err is one of the input-format errors.
func IsInputError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrInvalidFile) ||
		errors.Is(err, ErrEmptyText)
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
