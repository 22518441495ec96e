package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/models"
)

// ListPages returns a handler for GET /api/v1/pages.
func ListPages(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var limit int64
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 1 {
				respondError(c, &models.InputError{Message: "limit must be a positive integer"})
				return
			}
			limit = n
		}

		pages, err := st.ListPages(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PageListResponse{
			Success: true,
			Total:   len(pages),
			Pages:   pages,
		})
	}
}

// PageMarkdown returns a handler for GET /api/v1/pages/markdown.
// It fetches the page at ?url= and converts the HTML body to Markdown.
func PageMarkdown(ex Extractor) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawURL := c.Query("url")
		if rawURL == "" {
			respondError(c, &models.InputError{Message: "url query parameter is required"})
			return
		}

		totalStart := time.Now()
		markdown, err := ex.Markdown(c.Request.Context(), rawURL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"url":      rawURL,
			"markdown": markdown,
			"timing": models.TimingInfo{
				TotalMs: time.Since(totalStart).Milliseconds(),
			},
		})
	}
}
