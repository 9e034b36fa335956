// convert.go handles the upload endpoints.
//
// POST /api/convert   Upload a résumé and download it in a new format
// POST /api/parse-cv  Upload a résumé and get its sections as form fields
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/middleware"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/converter"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/extract"
)

// upload is a file read from a multipart request.
type upload struct {
	filename string
	data     []byte
}

// ConvertCV converts an uploaded résumé and returns the generated DOCX.
// POST /api/convert
//
// Multipart fields: file (.pdf, .docx, .doc), format_type (default modern),
// additional_instructions (optional).
func (h *Handler) ConvertCV(c *gin.Context) {
	up, ok := h.readUpload(c)
	if !ok {
		return
	}

	doc, err := h.Pipeline.Convert(c.Request.Context(), converter.Upload{
		Filename:     up.filename,
		Data:         up.data,
		Format:       c.PostForm("format_type"),
		Instructions: c.PostForm("additional_instructions"),
		Owner:        owner(c),
	})
	if err != nil {
		writePipelineError(c, err)
		return
	}
	sendDocument(c, doc)
}

// ParseCV extracts an uploaded résumé's sections for the form editor.
// POST /api/parse-cv
func (h *Handler) ParseCV(c *gin.Context) {
	up, ok := h.readUpload(c)
	if !ok {
		return
	}

	form, err := h.Pipeline.ParseFile(c.Request.Context(), up.filename, up.data)
	if err != nil {
		writePipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, form)
}

// readUpload reads the "file" field, enforcing the size limit and the
// extension allow-list. On failure it writes the response and returns false.
func (h *Handler) readUpload(c *gin.Context) (upload, bool) {
	// Limit request body size
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond(c, http.StatusRequestEntityTooLarge, "file_too_large", fmt.Sprintf(
				"File exceeds the maximum upload size of %s.", sizeLimit(tooLarge.Limit)))
			return upload{}, false
		}
		respond(c, http.StatusBadRequest, "invalid_request", fmt.Sprintf(
			"No file provided. Upload a file with the field name 'file'. Max size: %s.", sizeLimit(h.MaxUploadBytes)))
		return upload{}, false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !supported(ext) {
		respond(c, http.StatusBadRequest, "invalid_file_type", fmt.Sprintf(
			"Unsupported file format '%s'. Accepted: %s.", ext, strings.Join(extract.SupportedExtensions(), ", ")))
		return upload{}, false
	}

	// Go Pattern: io.ReadAll reads the whole upload into memory; both
	// document readers need random access anyway.
	data, err := io.ReadAll(file)
	if err != nil {
		respond(c, http.StatusBadRequest, "read_error", "Failed to read uploaded file")
		return upload{}, false
	}
	return upload{filename: header.Filename, data: data}, true
}

// sizeLimit formats a byte limit in whole megabytes, or kilobytes below 1MB.
func sizeLimit(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%dKB", n>>10)
}

func supported(ext string) bool {
	for _, e := range extract.SupportedExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}

// owner collects whichever identity the auth middleware attached.
func owner(c *gin.Context) converter.Owner {
	var o converter.Owner
	if apiKey := middleware.GetAPIKey(c); apiKey != nil {
		o.APIKeyID = &apiKey.ID
	}
	if user := middleware.GetUser(c); user != nil {
		o.UserID = &user.ID
	}
	return o
}
