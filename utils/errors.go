package utils

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeDuplicateField     = "DUPLICATE_FIELD"
	CodeHasDependents      = "HAS_DEPENDENTS"
	CodeInvalidTransition  = "INVALID_TRANSITION"
	CodeResourceNotFound   = "RESOURCE_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeBadRequest         = "BAD_REQUEST"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternalError      = "INTERNAL_ERROR"
	defaultValidationTitle = "validation failed"
)

// FieldErrors maps a form field to its message
type FieldErrors map[string]string

// Add records the first message for a field
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// Fields returns the sorted field names
func (f FieldErrors) Fields() []string {
	out := make([]string, 0, len(f))
	for k := range f {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Error implements error
func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for _, k := range f.Fields() {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// ApiError error carrying an HTTP status and machine-readable code
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
	Fields     FieldErrors
}

// Error implements error
func (e *ApiError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (%s)", e.Message, e.Fields.Error())
	}
	return e.Message
}

// NewApiError creates an ApiError
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateValidationError field-scoped validation failure
func CreateValidationError(fields FieldErrors) *ApiError {
	e := NewApiError(defaultValidationTitle, http.StatusBadRequest, CodeValidationFailed)
	e.Fields = fields
	return e
}

// CreateFieldError single-field validation failure
func CreateFieldError(field, message string) *ApiError {
	return CreateValidationError(FieldErrors{field: message})
}

// CreateDuplicateError uniqueness conflict surfaced on the offending field
func CreateDuplicateError(field, value string) *ApiError {
	e := NewApiError(fmt.Sprintf("%s %q already exists", field, value), http.StatusConflict, CodeDuplicateField)
	e.Fields = FieldErrors{field: fmt.Sprintf("%s already exists", field)}
	return e
}

// CreateDependencyError delete blocked by dependent records
func CreateDependencyError(message string) *ApiError {
	return NewApiError(message, http.StatusConflict, CodeHasDependents)
}

// CreateTransitionError illegal state machine move
func CreateTransitionError(from, to string) *ApiError {
	return NewApiError(fmt.Sprintf("cannot move from %s to %s", from, to), http.StatusConflict, CodeInvalidTransition)
}

// CreateNotFoundError missing resource
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" not found", http.StatusNotFound, CodeResourceNotFound)
}

// CreateUnauthorizedError missing or invalid credentials
func CreateUnauthorizedError() *ApiError {
	return NewApiError("unauthorized", http.StatusUnauthorized, CodeUnauthorized)
}

// CreateForbiddenError insufficient capability
func CreateForbiddenError() *ApiError {
	return NewApiError("forbidden", http.StatusForbidden, CodeForbidden)
}

// CreateBadRequestError malformed request
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeBadRequest)
}

// CreateTooManyRequestsError rate limited action
func CreateTooManyRequestsError(message string) *ApiError {
	return NewApiError(message, http.StatusTooManyRequests, CodeTooManyRequests)
}

// IsApiError reports whether err wraps an ApiError with the given code
func IsApiError(err error, code string) bool {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == code
	}
	return false
}

// HandleError renders err as a JSON error response
func HandleError(c *gin.Context, err error) {
	if c == nil || err == nil {
		return
	}

	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		err = CreateValidationError(fieldErrs)
	}

	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		event := Logger.Warn()
		if apiErr.StatusCode >= http.StatusInternalServerError {
			event = Logger.Error()
		}
		event.Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("code", apiErr.ErrorCode).
			Msg(apiErr.Message)

		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		if len(apiErr.Fields) > 0 {
			response["fields"] = apiErr.Fields
		}
		c.AbortWithStatusJSON(apiErr.StatusCode, response)
		return
	}

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, "unhandled api error")

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   "internal server error",
		"code":    CodeInternalError,
	})
}

// SuccessResponse wraps data in the standard envelope
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse writes a plain error envelope
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
