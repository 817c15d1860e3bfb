package service

import (
	"errors"

	"github.com/guttosm/packing-report/internal/packinglist"
)

// Error kinds reported to clients alongside a failure message.
const (
	KindValidation      = "ValidationError"
	KindInvalidWorkbook = "InvalidWorkbookError"
	KindMissingSheet    = "MissingSheetError"
	KindMissingColumns  = "MissingColumnsError"
	KindInternal        = "InternalError"
)

var (
	// ErrRepositoryNotConfigured is returned when MongoDB is disabled.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrEmptyWorkbook is returned when no workbook bytes were supplied.
	ErrEmptyWorkbook = errors.New("no file provided in request")
	// ErrWorkbookTooLarge is returned when the workbook exceeds the upload limit.
	ErrWorkbookTooLarge = errors.New("workbook exceeds maximum upload size")
	// ErrInvalidSizeOrder is returned for an empty or non-positive size order.
	ErrInvalidSizeOrder = errors.New("size order must list positive sizes")
	// ErrInconsistentAnalysis is returned when the views of an analysis disagree.
	ErrInconsistentAnalysis = errors.New("inconsistent analysis")
)

// ErrorKind classifies err for clients. Unknown errors are internal.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyWorkbook),
		errors.Is(err, ErrWorkbookTooLarge),
		errors.Is(err, ErrInvalidSizeOrder):
		return KindValidation
	case errors.Is(err, packinglist.ErrInvalidWorkbook):
		return KindInvalidWorkbook
	case errors.Is(err, packinglist.ErrSheetNotFound):
		return KindMissingSheet
	case errors.Is(err, packinglist.ErrMissingColumns):
		return KindMissingColumns
	default:
		return KindInternal
	}
}

// IsInputError reports whether err was caused by the caller's input.
func IsInputError(err error) bool {
	kind := ErrorKind(err)
	return kind != "" && kind != KindInternal
}
