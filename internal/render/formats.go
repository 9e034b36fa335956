package render

import (
	"strings"

	"github.com/pkg/errors"
)

// Format ids accepted by the API and the CLI.
const (
	FormatDatamatics  = "datamatics"
	FormatModern      = "modern"
	FormatTraditional = "traditional"
	FormatAcademic    = "academic"
	FormatATS         = "ats-friendly"
	FormatCreative    = "creative"

	// formatTwoColumn is a legacy alias that renders like modern.
	formatTwoColumn = "two-column"
)

// ErrUnknownFormat is returned by Lookup for ids outside the registry.
var ErrUnknownFormat = errors.New("unknown format")

// Format describes one output layout.
type Format struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var registry = []Format{
	{
		ID:          FormatDatamatics,
		Name:        "Datamatics Professional",
		Description: "Two-column professional format with technical/functional skills on left, summary and certifications on right, plus detailed projects experience",
	},
	{ID: FormatModern, Name: "Modern", Description: "Clean, contemporary design with emphasis on skills and achievements"},
	{ID: FormatTraditional, Name: "Traditional", Description: "Classic format suitable for conservative industries"},
	{ID: FormatAcademic, Name: "Academic", Description: "Format optimized for academic positions and research roles"},
	{ID: FormatATS, Name: "ATS-Friendly", Description: "Optimized for Applicant Tracking Systems with keyword optimization"},
	{ID: FormatCreative, Name: "Creative", Description: "Bold design for creative industries"},
}

// Formats lists every supported layout in display order.
func Formats() []Format {
	return append([]Format(nil), registry...)
}

// Lookup normalises a format id and returns its registry entry.
func Lookup(id string) (Format, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == formatTwoColumn {
		id = FormatModern
	}
	for _, f := range registry {
		if f.ID == id {
			return f, nil
		}
	}
	return Format{}, errors.Wrapf(ErrUnknownFormat, "%q", id)
}
