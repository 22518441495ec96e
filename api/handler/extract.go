package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/models"
)

// Extract returns a handler for POST /api/v1/extract.
// It runs the extraction pipeline without FAQ generation, useful for
// previewing what the generator would see.
func Extract(ex Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		var req models.ExtractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, &models.InputError{Message: err.Error()})
			return
		}
		req.Defaults()

		ctx := c.Request.Context()
		var (
			doc *models.ExtractedDocument
			err error
		)
		switch {
		case req.Mode == "readability":
			doc, err = ex.ExtractReadability(ctx, req.URL)
		case req.CSSSelector != "":
			doc, err = ex.ExtractSelection(ctx, req.URL, req.CSSSelector)
		default:
			doc, err = ex.Extract(ctx, req.URL)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.ExtractResponse{
			Success:  true,
			Document: doc,
			Timing: models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			},
		})
	}
}
