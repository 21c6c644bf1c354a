package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hoponhub/internal/domain"
	"hoponhub/internal/http/middleware"
)

// respondError writes {"error", "code", "request_id"} plus any extra fields
// at the top level, so clients can read e.g. "unavailable_seats" directly.
func respondError(c *gin.Context, status int, code, message string, extra map[string]any) {
	if code == "" {
		code = http.StatusText(status)
	}
	body := gin.H{
		"error": message,
		"code":  code,
	}
	if reqID := middleware.GetRequestID(c); reqID != "" {
		body["request_id"] = reqID
	}
	for k, v := range extra {
		if _, taken := body[k]; !taken {
			body[k] = v
		}
	}
	c.AbortWithStatusJSON(status, body)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		var details map[string]any
		var ce domain.ConflictError
		if errors.As(err, &ce) {
			details = ce.Details
		}
		respondError(c, http.StatusConflict, "conflict", err.Error(), details)
	case domain.IsInternal(err):
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "Server error", nil)
	}
}
