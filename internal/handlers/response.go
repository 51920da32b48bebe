package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/shopcore-backend/internal/domain/aggregates"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondDomainError translates typed aggregate errors into HTTP statuses.
func RespondDomainError(c *gin.Context, err error) {
	code := domainagg.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case domainagg.CodeValidation:
		status = http.StatusBadRequest
	case domainagg.CodeNotFound:
		status = http.StatusNotFound
	case domainagg.CodeConflict, domainagg.CodeInvariantViolation:
		status = http.StatusConflict
	case domainagg.CodePreconditionFailed:
		status = http.StatusPreconditionFailed
	case domainagg.CodeRetryable:
		status = http.StatusServiceUnavailable
	}
	RespondError(c, status, string(code), err)
}
