package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeBadRequest          ErrorType = "BAD_REQUEST"
	ErrorTypeUnauthorized        ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden           ErrorType = "FORBIDDEN"
	ErrorTypeNotFound            ErrorType = "NOT_FOUND"
	ErrorTypeConflict            ErrorType = "CONFLICT"
	ErrorTypePayloadTooLarge     ErrorType = "PAYLOAD_TOO_LARGE"
	ErrorTypeNotImplemented      ErrorType = "NOT_IMPLEMENTED"
	ErrorTypeUpstream            ErrorType = "UPSTREAM_ERROR"
	ErrorTypeInternalServerError ErrorType = "INTERNAL_SERVER_ERROR"
)

// CustomError represents a custom error with associated HTTP status code and type
type CustomError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Internal   error
}

// Error implements the error interface
func (e *CustomError) Error() string {
	return e.Message
}

// newError creates a new CustomError
func newError(errType ErrorType, message string, statusCode int, internal error) *CustomError {
	return &CustomError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// New400Error creates a new bad request error
func New400Error(message string) *CustomError {
	return newError(ErrorTypeBadRequest, message, http.StatusBadRequest, nil)
}

// New401Error creates a new unauthorized error with a caller-fixed message, so
// credential failures stay indistinguishable from each other.
func New401Error(message string) *CustomError {
	return newError(ErrorTypeUnauthorized, message, http.StatusUnauthorized, nil)
}

// New403Error creates a new forbidden error
func New403Error() *CustomError {
	return newError(ErrorTypeForbidden, "Access forbidden", http.StatusForbidden, nil)
}

// New404Error creates a new not found error
func New404Error(message string) *CustomError {
	return newError(ErrorTypeNotFound, message, http.StatusNotFound, nil)
}

// New409Error creates a new conflict error
func New409Error(message string) *CustomError {
	return newError(ErrorTypeConflict, message, http.StatusConflict, nil)
}

// New413Error creates a new payload too large error
func New413Error() *CustomError {
	return newError(ErrorTypePayloadTooLarge, "Request payload too large", http.StatusRequestEntityTooLarge, nil)
}

// New500Error creates a new internal server error
func New500Error(internal error) *CustomError {
	return newError(ErrorTypeInternalServerError, "Internal server error", http.StatusInternalServerError, internal)
}

// New501Error creates a new not implemented error
func New501Error(message string) *CustomError {
	return newError(ErrorTypeNotImplemented, message, http.StatusNotImplemented, nil)
}

// NewUpstreamError wraps an external AI provider failure. The internal error is
// logged, never echoed.
func NewUpstreamError(internal error) *CustomError {
	return newError(ErrorTypeUpstream, "AI provider request failed", http.StatusInternalServerError, internal)
}

// HandleError handles the custom error and sends the uniform JSON envelope
func HandleError(c *gin.Context, err error) {
	var customErr *CustomError
	var ok bool

	if customErr, ok = err.(*CustomError); !ok {
		customErr = New500Error(err)
	}

	// Log server-side failures with their internal cause
	if customErr.Internal != nil {
		log.Error().
			Err(customErr.Internal).
			Str("type", string(customErr.Type)).
			Str("url", c.Request.URL.String()).
			Msg("Request failed")
	}

	c.JSON(customErr.StatusCode, gin.H{
		"success": false,
		"message": customErr.Message,
	})
}
