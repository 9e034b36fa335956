// download.go sends generated documents as attachments.
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/converter"
)

// sendDocument writes doc as a downloadable attachment. The conversion ID,
// when history recorded one, goes in a header so clients can look it up.
func sendDocument(c *gin.Context, doc *converter.Document) {
	// Go Pattern: Content-Disposition "attachment" tells the browser to
	// download the file instead of displaying it.
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, sanitizeFilename(doc.Filename)))
	if doc.ConversionID != "" {
		c.Header("X-Conversion-ID", doc.ConversionID)
	}
	c.Data(http.StatusOK, converter.ContentType, doc.Data)
}

// sanitizeFilename removes characters that aren't safe for filenames.
// Go Pattern: Keep it simple. Replace unsafe characters with hyphens and
// trim the result; this is only for the Content-Disposition header.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-",
		"|", "-", "\n", " ", "\r", "",
	)
	name = replacer.Replace(name)

	// Collapse multiple hyphens/spaces
	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "cv.docx"
	}
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
