package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/models"
	"github.com/faqforge/faqforge/store"
)

// ListFAQs returns a handler for GET /api/v1/faqs.
// Query params: source_url, status (draft|published), limit.
func ListFAQs(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.FAQFilter{
			SourceURL: c.Query("source_url"),
			Status:    c.Query("status"),
		}
		if filter.Status != "" &&
			filter.Status != models.FAQStatusDraft &&
			filter.Status != models.FAQStatusPublished {
			respondError(c, &models.InputError{Message: "status must be draft or published"})
			return
		}
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || n < 1 {
				respondError(c, &models.InputError{Message: "limit must be a positive integer"})
				return
			}
			filter.Limit = n
		}

		items, err := st.ListFAQs(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.FAQListResponse{
			Success: true,
			Total:   len(items),
			Items:   items,
		})
	}
}

// GetFAQ returns a handler for GET /api/v1/faqs/:id.
func GetFAQ(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := st.GetFAQ(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if item == nil {
			faqNotFound(c)
			return
		}
		c.JSON(http.StatusOK, models.FAQResponse{Success: true, Item: item})
	}
}

// UpdateFAQ returns a handler for PATCH /api/v1/faqs/:id.
// Only the fields present in the body are changed.
func UpdateFAQ(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UpdateFAQRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, &models.InputError{Message: err.Error()})
			return
		}
		if req.Question == nil && req.Answer == nil {
			respondError(c, &models.InputError{Message: "at least one of question or answer is required"})
			return
		}
		if req.Question != nil && *req.Question == "" {
			respondError(c, &models.InputError{Message: "question must not be empty"})
			return
		}
		if req.Answer != nil && *req.Answer == "" {
			respondError(c, &models.InputError{Message: "answer must not be empty"})
			return
		}

		item, err := st.UpdateFAQ(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		if item == nil {
			faqNotFound(c)
			return
		}
		c.JSON(http.StatusOK, models.FAQResponse{Success: true, Item: item})
	}
}

// PublishFAQ returns a handler for POST /api/v1/faqs/:id/publish.
func PublishFAQ(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := st.PublishFAQ(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if item == nil {
			faqNotFound(c)
			return
		}
		c.JSON(http.StatusOK, models.FAQResponse{Success: true, Item: item})
	}
}

// DeleteFAQ returns a handler for DELETE /api/v1/faqs/:id.
func DeleteFAQ(st Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := st.DeleteFAQ(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if !deleted {
			faqNotFound(c)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func faqNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeNotFound,
			Message: "faq not found",
		},
	})
}
