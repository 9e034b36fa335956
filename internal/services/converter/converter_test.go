package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/resume"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/extract"
)

const markerReply = "[HEADER]\nJane Doe | QA Lead\n\n[LEFT_COLUMN_START]\nTechnical Skills:\nCloud: AWS, Azure\n[LEFT_COLUMN_END]\n\n[PROJECTS_EXPERIENCE]\nQA Lead / Acme | 01/2019 – 01/2021\n- Led testing efforts across three teams.\nTechnologies: Selenium"

// fakeModel records what it was asked and replies with canned text.
type fakeModel struct {
	reply   string
	form    *resume.FormSubmission
	err     error
	gotText string
	gotFmt  string
	gotMore string
}

func (m *fakeModel) Convert(_ context.Context, format, cvText, extra string) (string, error) {
	m.gotFmt, m.gotText, m.gotMore = format, cvText, extra
	return m.reply, m.err
}

func (m *fakeModel) ExtractSections(_ context.Context, cvText string) (*resume.FormSubmission, error) {
	m.gotText = cvText
	return m.form, m.err
}

func (m *fakeModel) Improve(_ context.Context, section, text, _ string) (string, error) {
	m.gotFmt, m.gotText = section, text
	return m.reply, m.err
}

type fakeRecorder struct {
	records []models.Conversion
	err     error
}

func (r *fakeRecorder) CreateConversion(_ context.Context, c *models.Conversion) error {
	if r.err != nil {
		return r.err
	}
	c.ID = "conv-1"
	r.records = append(r.records, *c)
	return nil
}

// newTestService swaps the DOCX writer for one that just writes the format
// id, so assertions can read the output directly.
func newTestService(model Model, history Recorder) *Service {
	svc := New(model, render.NewRenderer(nil), history)
	svc.write = func(w io.Writer, plan *render.Plan) error {
		_, err := io.WriteString(w, plan.Format)
		return err
	}
	return svc
}

func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	body := ""
	for _, p := range paragraphs {
		body += "<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>"
	}
	xml := `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(xml))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestConvert(t *testing.T) {
	model := &fakeModel{reply: markerReply}
	history := &fakeRecorder{}
	svc := newTestService(model, history)
	keyID := "key-1"

	doc, err := svc.Convert(context.Background(), Upload{
		Filename:     "Jane.DOCX",
		Data:         buildDOCX(t, "Jane Doe", "QA Lead at Acme"),
		Format:       "datamatics",
		Instructions: "Keep it short",
		Owner:        Owner{APIKeyID: &keyID},
	})
	require.NoError(t, err)

	assert.Equal(t, "converted_cv_datamatics.docx", doc.Filename)
	assert.Equal(t, "datamatics", string(doc.Data))
	require.NotNil(t, doc.Content)
	require.Len(t, doc.Content.Projects, 1)
	assert.Equal(t, "conv-1", doc.ConversionID)

	assert.Equal(t, "datamatics", model.gotFmt)
	assert.Equal(t, "Keep it short", model.gotMore)
	assert.Contains(t, model.gotText, "QA Lead at Acme")

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, models.StatusCompleted, rec.Status)
	assert.Equal(t, models.SourceUpload, rec.Source)
	assert.Equal(t, "Jane.DOCX", rec.OriginalName)
	assert.Regexp(t, `^[0-9a-f-]{36}\.docx$`, rec.StoredName)
	assert.Equal(t, 1, rec.ProjectCount)
	assert.Equal(t, 6, rec.WordCount)
	assert.Equal(t, len("datamatics"), rec.OutputBytes)
	assert.Equal(t, &keyID, rec.APIKeyID)
}

func TestConvert_WritesDOCX(t *testing.T) {
	svc := New(&fakeModel{reply: markerReply}, render.NewRenderer(nil), nil)

	doc, err := svc.Convert(context.Background(), Upload{
		Filename: "cv.docx",
		Data:     buildDOCX(t, "Jane Doe", "QA Lead at Acme"),
		Format:   "datamatics",
	})
	require.NoError(t, err)
	require.True(t, extract.ValidateDOCX(doc.Data))

	out, err := extract.DOCX(doc.Data)
	require.NoError(t, err)
	assert.Contains(t, out.Text, "Jane Doe | QA Lead")
	assert.Contains(t, out.Text, "QA LEAD – ACME | 01/2019 – 01/2021")
	assert.Contains(t, out.Text, "Technologies: Selenium")
}

func TestConvert_DefaultsToModern(t *testing.T) {
	svc := newTestService(&fakeModel{reply: "Jane Doe\nSUMMARY\nTester"}, nil)

	doc, err := svc.Convert(context.Background(), Upload{Filename: "cv.docx", Data: buildDOCX(t, "Jane")})
	require.NoError(t, err)
	assert.Equal(t, "converted_cv_modern.docx", doc.Filename)
	assert.Empty(t, doc.ConversionID)
}

func TestConvert_Failures(t *testing.T) {
	tests := []struct {
		name      string
		upload    func(t *testing.T) Upload
		modelErr  error
		wantStage Stage
		wantIs    error
	}{
		{
			name: "unsupported extension",
			upload: func(t *testing.T) Upload {
				return Upload{Filename: "cv.txt", Data: []byte("hello")}
			},
			wantStage: StageExtract,
			wantIs:    extract.ErrUnsupportedFormat,
		},
		{
			name: "pdf without header",
			upload: func(t *testing.T) Upload {
				return Upload{Filename: "cv.pdf", Data: []byte("not a pdf")}
			},
			wantStage: StageExtract,
			wantIs:    extract.ErrInvalidFile,
		},
		{
			name: "model failure",
			upload: func(t *testing.T) Upload {
				return Upload{Filename: "cv.docx", Data: buildDOCX(t, "Jane")}
			},
			modelErr:  errors.New("upstream 500"),
			wantStage: StageModel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &fakeRecorder{}
			svc := newTestService(&fakeModel{err: tt.modelErr}, history)

			doc, err := svc.Convert(context.Background(), tt.upload(t))
			require.Error(t, err)
			assert.Nil(t, doc)

			stage, ok := FailedStage(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantStage, stage)
			if tt.wantIs != nil {
				assert.True(t, errors.Is(err, tt.wantIs))
			}

			require.Len(t, history.records, 1)
			assert.Equal(t, models.StatusFailed, history.records[0].Status)
			assert.Equal(t, string(tt.wantStage), history.records[0].FailedStage)
			assert.NotEmpty(t, history.records[0].ErrorMessage)
		})
	}
}

func TestConvert_UnknownFormatIsNotRecorded(t *testing.T) {
	history := &fakeRecorder{}
	svc := newTestService(&fakeModel{}, history)

	_, err := svc.Convert(context.Background(), Upload{Filename: "cv.docx", Format: "fancy"})
	assert.True(t, errors.Is(err, render.ErrUnknownFormat))
	_, staged := FailedStage(err)
	assert.False(t, staged)
	assert.Empty(t, history.records)
}

func TestConvert_RenderFailure(t *testing.T) {
	svc := newTestService(&fakeModel{reply: markerReply}, nil)
	svc.write = func(io.Writer, *render.Plan) error { return errors.New("disk full") }

	_, err := svc.Convert(context.Background(), Upload{Filename: "cv.docx", Data: buildDOCX(t, "Jane")})
	stage, ok := FailedStage(err)
	require.True(t, ok)
	assert.Equal(t, StageRender, stage)
}

func TestConvert_HistoryFailureStillReturnsDocument(t *testing.T) {
	svc := newTestService(&fakeModel{reply: markerReply}, &fakeRecorder{err: errors.New("db down")})

	doc, err := svc.Convert(context.Background(), Upload{Filename: "cv.docx", Data: buildDOCX(t, "Jane")})
	require.NoError(t, err)
	assert.Empty(t, doc.ConversionID)
}

func TestGenerate(t *testing.T) {
	history := &fakeRecorder{}
	svc := newTestService(&fakeModel{}, history)
	form := resume.FormSubmission{
		Name:               "Jane Doe",
		Designation:        "QA Lead",
		TechnicalSkills:    "Cloud: AWS, Azure",
		ProjectsExperience: "QA Lead / Acme | 01/2019 – 01/2021\nLed testing efforts across three teams and more",
	}

	doc, err := svc.Generate(context.Background(), form, "", Owner{})
	require.NoError(t, err)
	assert.Equal(t, "cv_datamatics.docx", doc.Filename)
	require.NotNil(t, doc.Content)
	assert.Equal(t, "Jane Doe | QA Lead", doc.Content.Header)

	preview, err := svc.PreviewDocument(context.Background(), form, "ats-friendly", Owner{})
	require.NoError(t, err)
	assert.Equal(t, "cv_preview.docx", preview.Filename)
	assert.Nil(t, preview.Content)

	require.Len(t, history.records, 2)
	assert.Equal(t, models.SourceForm, history.records[0].Source)
	assert.Empty(t, history.records[0].OriginalName)
}

func TestPreview(t *testing.T) {
	svc := newTestService(&fakeModel{}, nil)

	text, content := svc.Preview(resume.FormSubmission{Name: "Jane Doe"})
	assert.Contains(t, text, "[HEADER]\nJane Doe")
	assert.Equal(t, "Jane Doe", content.Header)
}

func TestParseFile(t *testing.T) {
	model := &fakeModel{form: &resume.FormSubmission{Name: "Jane Doe"}}
	svc := newTestService(model, nil)

	form, err := svc.ParseFile(context.Background(), "cv.docx", buildDOCX(t, "Jane Doe"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", form.Name)
	assert.Equal(t, "Jane Doe", model.gotText)

	_, err = svc.ParseFile(context.Background(), "cv.rtf", []byte("x"))
	stage, _ := FailedStage(err)
	assert.Equal(t, StageExtract, stage)
}

func TestImprove(t *testing.T) {
	model := &fakeModel{reply: "Better text"}
	svc := newTestService(model, nil)

	out, err := svc.Improve(context.Background(), "summary", "text", "")
	require.NoError(t, err)
	assert.Equal(t, "Better text", out)
	assert.Equal(t, "summary", model.gotFmt)

	model.err = errors.New("timeout")
	_, err = svc.Improve(context.Background(), "summary", "text", "")
	stage, _ := FailedStage(err)
	assert.Equal(t, StageModel, stage)
}
