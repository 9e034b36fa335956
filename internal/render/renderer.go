package render

import (
	"context"
	"io"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
)

// Renderer turns model text into a DOCX in one of the registered formats.
type Renderer struct {
	logos LogoProvider
}

// NewRenderer creates a Renderer. logos may be nil, in which case the
// professional layout renders without a logo.
func NewRenderer(logos LogoProvider) *Renderer {
	return &Renderer{logos: logos}
}

// Plan parses text where the format needs structure and builds its layout.
// The returned model is nil for the single-flow formats.
func (r *Renderer) Plan(ctx context.Context, format, text string) (*Plan, *resume.ContentModel, error) {
	f, err := Lookup(format)
	if err != nil {
		return nil, nil, err
	}

	switch f.ID {
	case FormatDatamatics:
		model := resume.Parse(text)
		return BuildDatamatics(model, r.logo(ctx)), model, nil
	case FormatModern:
		model := resume.Parse(text)
		return BuildModern(model), model, nil
	default:
		return BuildStandard(f.ID, text), nil, nil
	}
}

// Render writes text as a DOCX in the given format.
func (r *Renderer) Render(ctx context.Context, w io.Writer, format, text string) error {
	plan, _, err := r.Plan(ctx, format, text)
	if err != nil {
		return err
	}
	return WriteDOCX(w, plan)
}

func (r *Renderer) logo(ctx context.Context) []byte {
	if r.logos == nil {
		return nil
	}
	data, ok := r.logos.Logo(ctx)
	if !ok {
		return nil
	}
	return data
}
