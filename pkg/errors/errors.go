package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeConflict             = "CONFLICT"
	CodeInternal             = "INTERNAL_ERROR"
	CodeBadRequest           = "BAD_REQUEST"
	CodeTimeout              = "TIMEOUT"
	CodeUnavailable          = "SERVICE_UNAVAILABLE"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeTooManyRequests      = "TOO_MANY_REQUESTS"
	CodeTooLarge             = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
	CodeCanceled             = "REQUEST_CANCELED"
)

// StatusClientClosedRequest is the nginx convention for a request the
// client abandoned before it was answered.
const StatusClientClosedRequest = 499

var statusByCode = map[string]int{
	CodeNotFound:             http.StatusNotFound,
	CodeValidation:           http.StatusUnprocessableEntity,
	CodeUnauthorized:         http.StatusUnauthorized,
	CodeForbidden:            http.StatusForbidden,
	CodeConflict:             http.StatusConflict,
	CodeInternal:             http.StatusInternalServerError,
	CodeBadRequest:           http.StatusBadRequest,
	CodeTimeout:              http.StatusGatewayTimeout,
	CodeUnavailable:          http.StatusServiceUnavailable,
	CodeInvalidInput:         http.StatusBadRequest,
	CodeTooManyRequests:      http.StatusTooManyRequests,
	CodeTooLarge:             http.StatusRequestEntityTooLarge,
	CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	CodeCanceled:             StatusClientClosedRequest,
}

// AppError is the error every handler writes back. Only Code, Message and
// Details reach the client; Err stays in the logs.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) StatusCode() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

func (e *AppError) Response() ErrorResponse {
	return ErrorResponse{Code: e.Code, Message: e.Message, Details: e.Details}
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(e.Response())
	return data
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

// coded builds an error whose status follows from its code.
func coded(code, message string) *AppError {
	return New(code, message, statusByCode[code])
}

func NotFound(resource string) *AppError {
	return coded(CodeNotFound, resource+" not found")
}

func NotFoundWithID(resource, id string) *AppError {
	return NotFound(resource).WithDetails(map[string]any{
		"resource": resource,
		"id":       id,
	})
}

func Validation(message string, details map[string]any) *AppError {
	return coded(CodeValidation, message).WithDetails(details)
}

func InvalidInput(message string) *AppError { return coded(CodeInvalidInput, message) }

func Unauthorized(message string) *AppError { return coded(CodeUnauthorized, message) }

// Forbidden marks an authenticated caller that is not allowed to act,
// e.g. a signed-in account missing from the admin allow-list.
func Forbidden(message string) *AppError { return coded(CodeForbidden, message) }

func Conflict(message string) *AppError { return coded(CodeConflict, message) }

func Timeout(message string) *AppError { return coded(CodeTimeout, message) }

func TooManyRequests(message string) *AppError { return coded(CodeTooManyRequests, message) }

func UnsupportedMediaType(message string) *AppError {
	return coded(CodeUnsupportedMediaType, message)
}

func Canceled(err error) *AppError {
	return Wrap(err, CodeCanceled, "request canceled", StatusClientClosedRequest)
}

func Internal(message string, err error) *AppError {
	return Wrap(err, CodeInternal, message, http.StatusInternalServerError)
}

func Unavailable(service string) *AppError {
	return coded(CodeUnavailable, service+" is temporarily unavailable")
}

func TooLarge(limit int64) *AppError {
	return coded(CodeTooLarge, fmt.Sprintf("request body exceeds %d bytes", limit))
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// HasCode reports whether err carries an AppError with the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
