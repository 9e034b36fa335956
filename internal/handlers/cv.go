// cv.go handles the form endpoints.
//
// POST /api/generate-cv   Render a filled-in form as a DOCX
// POST /api/preview-cv    Same, as cv_preview.docx or (?as=json) parsed content
// POST /api/improve-text  Rewrite one form section with the model
// GET  /api/formats       List the output formats
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
)

// GenerateCV renders a form submission.
// POST /api/generate-cv
//
// Request body:
//
//	{"name": "Jane Doe", "designation": "QA Lead", "technical_skills": "Cloud: AWS, Azure", ..., "format_type": "datamatics"}
func (h *Handler) GenerateCV(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "invalid_request", "Request body must be a JSON résumé form")
		return
	}

	doc, err := h.Pipeline.Generate(c.Request.Context(), req.FormSubmission, req.FormatType, owner(c))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	sendDocument(c, doc)
}

// PreviewCV renders a form submission for preview.
// POST /api/preview-cv
//
// With ?as=json the response is the formatted marker text and the parsed
// content instead of a document.
func (h *Handler) PreviewCV(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "invalid_request", "Request body must be a JSON résumé form")
		return
	}

	if strings.EqualFold(c.Query("as"), "json") {
		text, content := h.Pipeline.Preview(req.FormSubmission)
		c.JSON(http.StatusOK, models.PreviewResponse{
			FormattedText: text,
			Content:       content,
		})
		return
	}

	doc, err := h.Pipeline.PreviewDocument(c.Request.Context(), req.FormSubmission, req.FormatType, owner(c))
	if err != nil {
		writePipelineError(c, err)
		return
	}
	sendDocument(c, doc)
}

// ImproveText rewrites one section of the form.
// POST /api/improve-text
//
// Request body:
//
//	{"text": "...", "section_type": "summary", "instruction": "optional override"}
func (h *Handler) ImproveText(c *gin.Context) {
	var req models.ImproveTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "invalid_request", "text and section_type are required")
		return
	}

	improved, err := h.Pipeline.Improve(c.Request.Context(), req.SectionType, req.Text, req.Instruction)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ImproveTextResponse{ImprovedText: improved})
}

// ListFormats returns the supported output formats.
// GET /api/formats
func (h *Handler) ListFormats(c *gin.Context) {
	c.JSON(http.StatusOK, models.FormatsResponse{Formats: render.Formats()})
}
