// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import "strings"

// AnalyzeRequest is the JSON body of the analysis endpoints.
//
// @Description Packing list workbook to analyze, base64 encoded
// @Example {"file": "UEsDBBQABgAIAAAAIQ...", "filename": "PACKING LIST 14.xlsx"}
type AnalyzeRequest struct {
	// File is the xlsx workbook, standard base64.
	File string `json:"file" binding:"required" example:"UEsDBBQABgAIAAAAIQ..."`
	// Filename names the source workbook. Defaults to packing_list.xlsx.
	Filename string `json:"filename,omitempty" example:"PACKING LIST 14.xlsx"`
} // @name AnalyzeRequest

// UpdateSizeOrderRequest is the JSON body for storing a new size order.
//
// @Description New canonical size order; stored as a new active version
// @Example {"sizes": [12, 14, 16, 18, 20], "created_by": "ops", "note": "2024 season"}
type UpdateSizeOrderRequest struct {
	// Sizes lists sizes in report order.
	Sizes []int `json:"sizes" binding:"required,min=1" example:"12,14,16,18,20"`
	// CreatedBy identifies who stored this configuration.
	CreatedBy string `json:"created_by,omitempty" example:"ops"`
	// Note is a free-form remark kept with the version.
	Note string `json:"note,omitempty" example:"2024 season"`
} // @name UpdateSizeOrderRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrMissingFile is returned when file is empty.
	ErrMissingFile = &ValidationError{
		Field:   "file",
		Message: "is required",
	}
	// ErrInvalidSizes is returned when a size is not a positive integer.
	ErrInvalidSizes = &ValidationError{
		Field:   "sizes",
		Message: "must be positive integers",
	}
)

// Validate performs custom validation on the request.
func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.File) == "" {
		return ErrMissingFile
	}
	return nil
}

// Validate performs custom validation on the request.
func (r *UpdateSizeOrderRequest) Validate() error {
	if len(r.Sizes) == 0 {
		return ErrInvalidSizes
	}
	for _, s := range r.Sizes {
		if s <= 0 {
			return ErrInvalidSizes
		}
	}
	return nil
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
