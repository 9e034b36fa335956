// errors.go maps pipeline errors onto HTTP responses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Shimizu-Technology/cv-formatter-api/internal/models"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/render"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/converter"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/extract"
	"github.com/Shimizu-Technology/cv-formatter-api/internal/services/llm"
)

// respond writes a standard error body.
func respond(c *gin.Context, code int, kind, message string) {
	c.JSON(code, models.ErrorResponse{
		Error:   kind,
		Message: message,
		Code:    code,
	})
}

// writePipelineError picks a status for a conversion error:
// input problems are 400, a missing model key is 503, model failures are
// 502 and everything else is 500.
func writePipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, render.ErrUnknownFormat):
		respond(c, http.StatusBadRequest, "unknown_format", err.Error())
		return
	case extract.IsInputError(err):
		respond(c, http.StatusBadRequest, "invalid_file", err.Error())
		return
	case llm.IsConfigError(err):
		respond(c, http.StatusServiceUnavailable, "model_not_configured", err.Error())
		return
	}

	stage, _ := converter.FailedStage(err)
	log.Error().Err(err).Str("stage", string(stage)).Str("path", c.FullPath()).Msg("request failed")

	switch stage {
	case converter.StageModel:
		respond(c, http.StatusBadGateway, "model_error", "The language model request failed: "+err.Error())
	case converter.StageExtract:
		respond(c, http.StatusInternalServerError, "extraction_failed", "Text extraction failed: "+err.Error())
	case converter.StageRender:
		respond(c, http.StatusInternalServerError, "render_failed", "Document generation failed: "+err.Error())
	default:
		respond(c, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
