package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faqforge/faqforge/models"
)

// respondError maps a pipeline error to an HTTP status and a stable
// machine-readable code. The JSON shape is the same for every failure.
func respondError(c *gin.Context, err error) {
	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "path", c.FullPath(), "status", status, "code", detail.Code, "error", err)
	} else {
		slog.Warn("request rejected", "path", c.FullPath(), "status", status, "code", detail.Code, "error", err)
	}
	c.JSON(status, models.ErrorResponse{Success: false, Error: &detail})
}

func classify(err error) (int, models.ErrorDetail) {
	var inputErr *models.InputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest, models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: inputErr.Message,
		}
	}

	var contentErr *models.ContentError
	if errors.As(err, &contentErr) {
		return http.StatusUnprocessableEntity, models.ErrorDetail{
			Code:    models.ErrCodeContentTooShort,
			Message: contentErr.Error(),
		}
	}

	var fetchErr *models.FetchError
	if errors.As(err, &fetchErr) {
		return classifyFetch(fetchErr)
	}

	var upstreamErr *models.UpstreamError
	if errors.As(err, &upstreamErr) {
		return classifyUpstream(upstreamErr)
	}

	var parseErr *models.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadGateway, models.ErrorDetail{
			Code:    models.ErrCodeGenerationParse,
			Message: "generator returned an unusable response, retry the request",
		}
	}

	var countErr *models.CountError
	if errors.As(err, &countErr) {
		return http.StatusBadGateway, models.ErrorDetail{
			Code:    models.ErrCodeGenerationShortfall,
			Message: countErr.Error(),
		}
	}

	return http.StatusInternalServerError, models.ErrorDetail{
		Code:    models.ErrCodeInternal,
		Message: "internal server error",
	}
}

func classifyFetch(err *models.FetchError) (int, models.ErrorDetail) {
	switch err.Kind {
	case models.FetchForbidden:
		return http.StatusUnprocessableEntity, models.ErrorDetail{
			Code:    models.ErrCodeSourceForbidden,
			Message: "source refused access (403), the page cannot be used",
		}
	case models.FetchNotFound:
		return http.StatusUnprocessableEntity, models.ErrorDetail{
			Code:    models.ErrCodeFetchFailed,
			Message: "source page not found (404)",
		}
	case models.FetchRateLimited:
		return http.StatusTooManyRequests, models.ErrorDetail{
			Code:    models.ErrCodeSourceRateLimit,
			Message: "source is rate limiting requests, try again later",
		}
	case models.FetchTimeout:
		return http.StatusGatewayTimeout, models.ErrorDetail{
			Code:    models.ErrCodeFetchFailed,
			Message: "timed out fetching the source page",
		}
	default:
		return http.StatusBadGateway, models.ErrorDetail{
			Code:    models.ErrCodeFetchFailed,
			Message: err.Error(),
		}
	}
}

func classifyUpstream(err *models.UpstreamError) (int, models.ErrorDetail) {
	if err.StatusCode == http.StatusTooManyRequests {
		return http.StatusTooManyRequests, models.ErrorDetail{
			Code:    models.ErrCodeGeneratorRateLimited,
			Message: "generator is rate limiting requests, try again later",
		}
	}
	if err.StatusCode == http.StatusUnauthorized || err.StatusCode == http.StatusForbidden {
		return http.StatusBadGateway, models.ErrorDetail{
			Code:    models.ErrCodeGeneratorAuth,
			Message: "generator rejected the configured credentials",
		}
	}
	if err.Retriable {
		return http.StatusServiceUnavailable, models.ErrorDetail{
			Code:    models.ErrCodeGeneratorFailure,
			Message: "generator is temporarily unavailable, try again later",
		}
	}
	return http.StatusBadGateway, models.ErrorDetail{
		Code:    models.ErrCodeGeneratorFailure,
		Message: "generator request failed",
	}
}
