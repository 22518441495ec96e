package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/models"
	"github.com/faqforge/faqforge/store"
)

// ExportFAQs returns a handler for GET /api/v1/export/faqs.
// Query params: format (json|csv|markdown, default json), plus the same
// source_url / status filters as the list endpoint.
func ExportFAQs(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		format := c.DefaultQuery("format", "json")
		filter := store.FAQFilter{
			SourceURL: c.Query("source_url"),
			Status:    c.Query("status"),
		}

		items, err := st.ListFAQs(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		switch format {
		case "json":
			body, err := json.MarshalIndent(items, "", "  ")
			if err != nil {
				respondError(c, err)
				return
			}
			c.Header("Content-Disposition", `attachment; filename="faqs.json"`)
			c.Data(http.StatusOK, "application/json", body)
		case "csv":
			body, err := renderCSV(items)
			if err != nil {
				respondError(c, err)
				return
			}
			c.Header("Content-Disposition", `attachment; filename="faqs.csv"`)
			c.Data(http.StatusOK, "text/csv", body)
		case "markdown":
			c.Header("Content-Disposition", `attachment; filename="faqs.md"`)
			c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(renderMarkdown(items)))
		default:
			respondError(c, &models.InputError{Message: "format must be json, csv, or markdown"})
		}
	}
}

func renderCSV(items []models.FAQItem) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "question", "answer", "source_url", "status", "created_at"}); err != nil {
		return nil, err
	}
	for _, item := range items {
		row := []string{
			item.ID,
			item.Question,
			item.Answer,
			item.SourceURL,
			item.Status,
			item.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func renderMarkdown(items []models.FAQItem) string {
	var b strings.Builder
	b.WriteString("# FAQ\n")
	var lastSource string
	for _, item := range items {
		if item.SourceURL != lastSource {
			fmt.Fprintf(&b, "\n## %s\n", item.SourceURL)
			lastSource = item.SourceURL
		}
		fmt.Fprintf(&b, "\n### %s\n\n%s\n", item.Question, item.Answer)
	}
	return b.String()
}
