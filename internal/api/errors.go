package api

import (
	"errors"
	"net/http"

	"github.com/UnknownOlympus/locator/internal/resolver"
	"github.com/UnknownOlympus/locator/internal/service"
	"github.com/UnknownOlympus/locator/internal/view"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidRequest = "invalid request"
	msgNotFound       = "Address not found. Please try a different search."
	msgTryAgain       = "Search failed, please try again."
	msgInternal       = "internal error"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// statusFor maps a domain error to its HTTP status and public message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, resolver.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case resolver.IsTransport(err):
		return http.StatusBadGateway, msgTryAgain
	case errors.Is(err, resolver.ErrSuperseded):
		return http.StatusConflict, err.Error()
	case errors.Is(err, view.ErrSessionNotFound),
		errors.Is(err, service.ErrApplicationNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, view.ErrNoSuggestion),
		errors.Is(err, service.ErrInvalidApplication):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrAlreadyReviewed):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	status, message := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.ErrorContext(c.Request.Context(), "Request failed",
			"path", c.FullPath(), "request_id", c.GetString(requestIDKey), "error", err)
	}

	resp := ErrorResponse{Error: message}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		resp.Details = fields
	}
	c.JSON(status, resp)
}

func badRequest(c *gin.Context, details any) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidRequest, Details: details})
}
