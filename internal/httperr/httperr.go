package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError is the wire shape for every error response.
type HTTPError struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Stable machine-readable codes.
const (
	CodeMissingFields         = "MISSING_FIELDS"
	CodeConflict              = "CONFLICT"
	CodeTooManyAttempts       = "TOO_MANY_ATTEMPTS"
	CodeNoPendingVerification = "NO_PENDING_VERIFICATION"
	CodeExpiredCode           = "EXPIRED_CODE"
	CodeInvalidCode           = "INVALID_CODE"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeServerError           = "SERVER_ERROR"
)

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Error: message,
		Code:  code,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, CodeNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Write(c, http.StatusConflict, CodeConflict, message)
}

func Forbidden(c *gin.Context, message string) {
	Write(c, http.StatusForbidden, CodeForbidden, message)
}

func TooManyRequests(c *gin.Context, message string) {
	Write(c, http.StatusTooManyRequests, CodeTooManyAttempts, message)
}

func Internal(c *gin.Context) {
	// Internal detail never leaks to callers.
	Write(c, http.StatusInternalServerError, CodeServerError, "Something went wrong.")
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}
