// =============================================================================
// Sales Analyzer - Application Errors
// =============================================================================
//
// Coded errors returned by the loader, the aggregator and the configuration
// layer. Callers match on the code with errors.Is against the sentinel values
// below, or pull the full *AppError out with errors.As:
//
//   if errors.Is(err, apperr.ErrNotLoaded) { ... }
//
// The core never renders user-facing text. Message carries context for logs;
// the CLI decides what to print.
//
// =============================================================================

package apperr

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an AppError.
type ErrorCode string

const (
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodeSchema      ErrorCode = "SCHEMA"
	CodeNotLoaded   ErrorCode = "NOT_LOADED"
	CodeInvalidDate ErrorCode = "INVALID_DATE"
	CodeSave        ErrorCode = "SAVE"
	CodeEmptyResult ErrorCode = "EMPTY_RESULT"
	CodeConfig      ErrorCode = "CONFIG"
)

// Sentinels for errors.Is. Only the code is compared.
var (
	ErrNotFound    = &AppError{Code: CodeNotFound}
	ErrSchema      = &AppError{Code: CodeSchema}
	ErrNotLoaded   = &AppError{Code: CodeNotLoaded}
	ErrInvalidDate = &AppError{Code: CodeInvalidDate}
	ErrSave        = &AppError{Code: CodeSave}
	ErrEmptyResult = &AppError{Code: CodeEmptyResult}
	ErrConfig      = &AppError{Code: CodeConfig}
)

// AppError is a coded error with optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any *AppError carrying the same code.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

func NotFound(path string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("file %s does not exist", path))
}

func Schema(missing []string) *AppError {
	return New(CodeSchema, fmt.Sprintf("missing required columns: %v", missing))
}

func NotLoaded() *AppError {
	return New(CodeNotLoaded, "no data has been loaded")
}

func InvalidDate(value string, cause error) *AppError {
	return Wrap(cause, CodeInvalidDate, fmt.Sprintf("cannot parse date %q", value))
}

func Save(path string, cause error) *AppError {
	return Wrap(cause, CodeSave, fmt.Sprintf("failed to save %s", path))
}

func EmptyResult(message string) *AppError {
	return New(CodeEmptyResult, message)
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
