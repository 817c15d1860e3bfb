package dto

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/guttosm/packing-report/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodePayloadTooLarge indicates the upload exceeds the size limit.
	ErrCodePayloadTooLarge = "payload_too_large"
	// ErrCodeUnprocessable indicates a workbook that cannot be analyzed.
	ErrCodeUnprocessable = "unprocessable_workbook"
	// ErrCodeUnavailable indicates a dependency that is disabled or down.
	ErrCodeUnavailable = "service_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"unprocessable_workbook"`
	Message string `json:"message,omitempty" example:"sheet not found: \"DATA\""`
	// Type is the machine-readable analysis error kind, when there is one.
	Type      string            `json:"type,omitempty" example:"MissingSheetError"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithType sets the analysis error kind.
func (e ErrorResponse) WithType(kind string) ErrorResponse {
	e.Type = kind
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusRequestEntityTooLarge:
		return ErrCodePayloadTooLarge
	case http.StatusUnprocessableEntity:
		return ErrCodeUnprocessable
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// AnalyzeResponse is the data of a successful analysis.
// @Description Analysis report (base64 xlsx) with the computed summary
type AnalyzeResponse struct {
	File           string             `json:"file" example:"UEsDBBQABgAIAAAAIQ..."`
	Filename       string             `json:"filename" example:"PACKING LIST 14_ANALYSIS.xlsx"`
	InputSHA256    string             `json:"input_sha256"`
	Cached         bool               `json:"cached"`
	DurationMs     int64              `json:"duration_ms"`
	Summary        model.Summary      `json:"summary"`
	LotTotals      []model.GroupTotal `json:"lot_totals"`
	LocationTotals []model.GroupTotal `json:"location_totals"`
	Coercion       model.Coercion     `json:"coercion"`
} // @name AnalyzeResponse

// NewAnalyzeResponse builds the response for r.
func NewAnalyzeResponse(r *model.AnalysisResult) AnalyzeResponse {
	resp := AnalyzeResponse{
		File:        base64.StdEncoding.EncodeToString(r.Report),
		Filename:    r.OutputFilename,
		InputSHA256: r.InputSHA256,
		Cached:      r.Cached,
		DurationMs:  r.DurationMs,
	}
	if a := r.Analysis; a != nil {
		resp.Summary = a.Summary
		resp.LotTotals = a.ByLot.Groups
		resp.LocationTotals = a.ByLocation.Groups
		resp.Coercion = a.Coercion
	}
	return resp
}

// SizeOrderResponse describes one stored size order version.
// @Description Size order configuration version
type SizeOrderResponse struct {
	Sizes     []int     `json:"sizes" example:"12,14,16"`
	Version   int       `json:"version" example:"3"`
	Active    bool      `json:"active" example:"true"`
	Source    string    `json:"source" example:"database"`
	CreatedBy string    `json:"created_by,omitempty" example:"ops"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
} // @name SizeOrderResponse

// Size order sources.
const (
	SizeOrderSourceDatabase = "database"
	SizeOrderSourceDefault  = "default"
)
