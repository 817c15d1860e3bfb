package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/adapter"
	"github.com/guttosm/packing-report/internal/circuitbreaker"
	"github.com/guttosm/packing-report/internal/domain/dto"
	"github.com/guttosm/packing-report/internal/i18n"
	"github.com/guttosm/packing-report/internal/middleware"
	"github.com/guttosm/packing-report/internal/packinglist"
	"github.com/guttosm/packing-report/internal/service"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	resp.Data = nil
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	resp.Error = ""
	resp.Message = ""
	resp.Type = ""
	resp.RequestID = ""
	resp.Timestamp = time.Time{}
	resp.Details = nil
	errorResponsePool.Put(resp)
}

// Validator interface for types that can validate themselves.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into T and runs its Validate
// method when it has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	if validator, ok := any(&req).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

// ResponseBuilder writes the API's success and error envelopes.
// Uses sync.Pool for DTO reuse to reduce allocations.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends a successful response with the given data.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// gin serializes synchronously, so the pooled value can go back right after.
	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// Error sends a localized error response for messageKey.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	b.write(statusCode, messageKey, "", nil, err)
}

func (b *ResponseBuilder) write(statusCode int, messageKey, kind string, details map[string]string, err error) {
	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	resp.Type = kind
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Recorded for the ErrorHandler log line; the response is already written.
	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// AnalysisError maps an error from decoding or analyzing a workbook to its
// status, message and error kind.
func (b *ResponseBuilder) AnalysisError(err error) {
	status, key := analysisStatus(err)

	var details map[string]string
	var missing *packinglist.MissingColumnsError
	if errors.As(err, &missing) {
		details = map[string]string{"columns": strings.Join(missing.Columns, ", ")}
	} else if status != http.StatusInternalServerError {
		details = map[string]string{"reason": err.Error()}
	}

	kind := adapter.ErrorKind(err)
	if status == http.StatusGatewayTimeout {
		kind = ""
	}
	b.write(status, key, kind, details, err)
}

// StorageError answers for size-order and history operations.
func (b *ResponseBuilder) StorageError(err error) {
	switch {
	case errors.Is(err, service.ErrRepositoryNotConfigured),
		errors.Is(err, circuitbreaker.ErrCircuitOpen):
		b.Error(http.StatusServiceUnavailable, i18n.ErrKeyStorageDisabled, err)
	case errors.Is(err, service.ErrInvalidSizeOrder):
		b.write(http.StatusBadRequest, i18n.ErrKeyInvalidSizeOrder, service.KindValidation,
			map[string]string{"reason": err.Error()}, err)
	case errors.Is(err, context.DeadlineExceeded):
		b.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		b.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func analysisStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrWorkbookTooLarge):
		return http.StatusRequestEntityTooLarge, i18n.ErrKeyFileTooLarge
	case errors.Is(err, service.ErrEmptyWorkbook), errors.Is(err, adapter.ErrMissingFile):
		return http.StatusBadRequest, i18n.ErrKeyMissingFile
	case errors.Is(err, adapter.ErrInvalidBase64):
		return http.StatusBadRequest, i18n.ErrKeyInvalidBase64
	case errors.Is(err, packinglist.ErrInvalidWorkbook):
		return http.StatusUnprocessableEntity, i18n.ErrKeyInvalidWorkbook
	case errors.Is(err, packinglist.ErrSheetNotFound):
		return http.StatusUnprocessableEntity, i18n.ErrKeyMissingSheet
	case errors.Is(err, packinglist.ErrMissingColumns):
		return http.StatusUnprocessableEntity, i18n.ErrKeyMissingColumns
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}
