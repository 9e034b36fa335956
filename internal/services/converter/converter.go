// Package converter orchestrates the résumé pipeline:
// extract text → ask the model → parse → render a DOCX.
//
// Go Pattern: the service depends on small interfaces (Model, Recorder)
// rather than on the concrete OpenAI client and database. Handlers and the
// CLI get the real implementations; tests get fakes.
package converter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/extract"
)

// Default formats per entry point.
const (
	DefaultUploadFormat = render.FormatModern
	DefaultFormFormat   = render.FormatDatamatics
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageExtract Stage = "extract"
	StageModel   Stage = "model"
	StageRender  Stage = "render"
)

// StageError records which stage of a conversion failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage an error came from, if it carries one.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// Model is the language-model collaborator.
type Model interface {
	Convert(ctx context.Context, format, cvText, extraInstructions string) (string, error)
	ExtractSections(ctx context.Context, cvText string) (*resume.FormSubmission, error)
	Improve(ctx context.Context, section, text, instruction string) (string, error)
}

// Recorder stores conversion history. The database implements it.
type Recorder interface {
	CreateConversion(ctx context.Context, c *models.Conversion) error
}

// Owner identifies who asked for a conversion. Both fields are optional.
type Owner struct {
	APIKeyID *string
	UserID   *string
}

// Upload is a file conversion request.
type Upload struct {
	Filename     string
	Data         []byte
	Format       string // empty selects DefaultUploadFormat
	Instructions string // appended to the model prompt
	Owner        Owner
}

// Document is a rendered résumé ready to download.
type Document struct {
	Filename     string
	Format       string
	Data         []byte
	Content      *resume.ContentModel // nil for the single-flow formats
	ConversionID string               // empty when history is disabled or failed to save
}

// ContentType is the MIME type of every generated document.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Service runs conversions.
type Service struct {
	model    Model
	renderer *render.Renderer
	history  Recorder

	// write serialises a plan. Tests swap it to inspect the plan or to fail.
	write func(io.Writer, *render.Plan) error
}

// New creates a Service. history may be nil, which disables the
// conversion log.
func New(model Model, renderer *render.Renderer, history Recorder) *Service {
	return &Service{
		model:    model,
		renderer: renderer,
		history:  history,
		write:    render.WriteDOCX,
	}
}

// Convert turns an uploaded résumé into a DOCX in the requested format.
// Every attempt that gets past format validation is recorded, including
// failures, but the résumé text itself is never stored.
func (s *Service) Convert(ctx context.Context, up Upload) (*Document, error) {
	format, err := lookupFormat(up.Format, DefaultUploadFormat)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	record := &models.Conversion{
		Source:       models.SourceUpload,
		Format:       format,
		OriginalName: up.Filename,
		StoredName:   uuid.New().String() + strings.ToLower(filepath.Ext(up.Filename)),
		APIKeyID:     up.Owner.APIKeyID,
		UserID:       up.Owner.UserID,
	}

	doc, err := s.convert(ctx, up, format, record)
	s.finish(ctx, record, doc, err, start)
	return doc, err
}

func (s *Service) convert(ctx context.Context, up Upload, format string, record *models.Conversion) (*Document, error) {
	extracted, err := extract.Extract(up.Filename, up.Data)
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}
	record.WordCount = extracted.WordCount

	log.Info().
		Str("filename", up.Filename).
		Str("format", format).
		Int("words", extracted.WordCount).
		Msg("converting résumé")

	converted, err := s.model.Convert(ctx, format, extracted.Text, up.Instructions)
	if err != nil {
		return nil, &StageError{Stage: StageModel, Err: err}
	}

	return s.render(ctx, format, converted, "converted_cv_"+format+".docx")
}

// Generate renders a hand-filled form. The form goes through the same
// marker-text path as model output.
func (s *Service) Generate(ctx context.Context, form resume.FormSubmission, format string, owner Owner) (*Document, error) {
	return s.generate(ctx, form, format, owner, func(f string) string { return "cv_" + f + ".docx" })
}

// PreviewDocument renders a form like Generate under the preview filename.
func (s *Service) PreviewDocument(ctx context.Context, form resume.FormSubmission, format string, owner Owner) (*Document, error) {
	return s.generate(ctx, form, format, owner, func(string) string { return "cv_preview.docx" })
}

func (s *Service) generate(ctx context.Context, form resume.FormSubmission, format string, owner Owner, name func(string) string) (*Document, error) {
	format, err := lookupFormat(format, DefaultFormFormat)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	record := &models.Conversion{
		Source:   models.SourceForm,
		Format:   format,
		APIKeyID: owner.APIKeyID,
		UserID:   owner.UserID,
	}

	doc, err := s.render(ctx, format, resume.FormatForm(form), name(format))
	s.finish(ctx, record, doc, err, start)
	return doc, err
}

// Preview formats a form as marker text and parses it without rendering.
func (s *Service) Preview(form resume.FormSubmission) (string, *resume.ContentModel) {
	return resume.ParseForm(form)
}

// ParseFile extracts an upload's text and asks the model to split it into
// form sections.
func (s *Service) ParseFile(ctx context.Context, filename string, data []byte) (*resume.FormSubmission, error) {
	extracted, err := extract.Extract(filename, data)
	if err != nil {
		return nil, &StageError{Stage: StageExtract, Err: err}
	}
	form, err := s.model.ExtractSections(ctx, extracted.Text)
	if err != nil {
		return nil, &StageError{Stage: StageModel, Err: err}
	}
	return form, nil
}

// Improve rewrites one form section with the model.
func (s *Service) Improve(ctx context.Context, section, text, instruction string) (string, error) {
	improved, err := s.model.Improve(ctx, section, text, instruction)
	if err != nil {
		return "", &StageError{Stage: StageModel, Err: err}
	}
	return improved, nil
}

func (s *Service) render(ctx context.Context, format, text, filename string) (*Document, error) {
	plan, content, err := s.renderer.Plan(ctx, format, text)
	if err != nil {
		return nil, &StageError{Stage: StageRender, Err: err}
	}

	var buf bytes.Buffer
	if err := s.write(&buf, plan); err != nil {
		return nil, &StageError{Stage: StageRender, Err: err}
	}

	return &Document{
		Filename: filename,
		Format:   format,
		Data:     buf.Bytes(),
		Content:  content,
	}, nil
}

// finish fills in the outcome and writes the history row.
// Go Pattern: a failed history write is logged and swallowed; the caller
// still gets its document.
func (s *Service) finish(ctx context.Context, record *models.Conversion, doc *Document, convErr error, start time.Time) {
	record.DurationMS = time.Since(start).Milliseconds()

	if convErr != nil {
		record.Status = models.StatusFailed
		record.ErrorMessage = convErr.Error()
		if stage, ok := FailedStage(convErr); ok {
			record.FailedStage = string(stage)
		}
		log.Error().Err(convErr).
			Str("format", record.Format).
			Str("source", string(record.Source)).
			Msg("conversion failed")
	} else {
		record.Status = models.StatusCompleted
		record.OutputName = doc.Filename
		record.OutputBytes = len(doc.Data)
		if doc.Content != nil {
			record.ProjectCount = len(doc.Content.Projects)
		}
	}

	if s.history == nil {
		return
	}
	if err := s.history.CreateConversion(ctx, record); err != nil {
		log.Warn().Err(err).Str("format", record.Format).Msg("failed to record conversion")
		return
	}
	if doc != nil {
		doc.ConversionID = record.ID
	}
	log.Info().
		Str("conversion_id", record.ID).
		Str("status", string(record.Status)).
		Int64("duration_ms", record.DurationMS).
		Msg("conversion recorded")
}

func lookupFormat(id, fallback string) (string, error) {
	if strings.TrimSpace(id) == "" {
		id = fallback
	}
	f, err := render.Lookup(id)
	if err != nil {
		return "", err
	}
	return f.ID, nil
}
