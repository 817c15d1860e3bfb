package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/adapter"
	"github.com/guttosm/packing-report/internal/domain/dto"
	"github.com/guttosm/packing-report/internal/i18n"
	"github.com/guttosm/packing-report/internal/middleware"
	"github.com/guttosm/packing-report/internal/service"
)

// XLSXContentType is the media type of generated reports.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Response headers set on report downloads.
const (
	InputSHA256Header = "X-Input-SHA256"
	CachedHeader      = "X-Analysis-Cached"
)

// multipartOverhead is allowed on top of the upload limit for form framing.
const multipartOverhead = 64 << 10

// Invoker runs one adapter event.
type Invoker interface {
	Handle(ctx context.Context, event adapter.Event) adapter.Response
}

// AnalysisHandler serves the analysis endpoints.
type AnalysisHandler struct {
	analyzer service.AnalysisService
	invoker  Invoker
	maxBytes int64
}

// NewAnalysisHandler creates an AnalysisHandler. maxBytes bounds the decoded
// workbook; zero disables the HTTP-level limit.
func NewAnalysisHandler(analyzer service.AnalysisService, invoker Invoker, maxBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		invoker:  invoker,
		maxBytes: maxBytes,
	}
}

// Analyze handles POST /api/analyze.
//
// @Summary      Analyze a packing list
// @Description  Reads the DATA sheet of a base64 encoded xlsx packing list and returns the analysis workbook (base64) with the computed summary. Supports idempotency via Idempotency-Key header.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.AnalyzeRequest true "Workbook to analyze"
// @Success      200 {object} dto.SuccessResponse{data=dto.AnalyzeResponse} "Analysis report"
// @Failure      400 {object} dto.ErrorResponse "Invalid body, missing file or bad base64"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - missing or invalid API key"
// @Failure      413 {object} dto.ErrorResponse "Workbook exceeds the upload limit"
// @Failure      422 {object} dto.ErrorResponse "Not a workbook, or DATA sheet or columns missing"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/analyze [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, base64Len(h.maxBytes)+multipartOverhead)
	}

	req, err := BuildRequestAndValidate[dto.AnalyzeRequest](c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			builder.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyFileTooLarge, err)
		case errors.Is(err, dto.ErrMissingFile):
			builder.Error(http.StatusBadRequest, i18n.ErrKeyMissingFile, err)
		default:
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	data, err := adapter.DecodeFile(req.File)
	if err != nil {
		builder.AnalysisError(err)
		return
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), service.AnalyzeInput{
		Data:      data,
		Filename:  req.Filename,
		RequestID: middleware.GetRequestID(c),
	})
	if err != nil {
		builder.AnalysisError(err)
		return
	}

	builder.SuccessOK(dto.NewAnalyzeResponse(result))
}

// Upload handles POST /api/analyze/upload.
//
// @Summary      Analyze an uploaded packing list
// @Description  Accepts the xlsx packing list as multipart form field "file" and answers with the analysis workbook as an attachment.
// @Tags         Analysis
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        file formData file true "Packing list workbook"
// @Param        filename formData string false "Source filename override"
// @Success      200 {file} binary "Analysis workbook"
// @Failure      400 {object} dto.ErrorResponse "Missing file"
// @Failure      413 {object} dto.ErrorResponse "Workbook exceeds the upload limit"
// @Failure      422 {object} dto.ErrorResponse "Not a workbook, or DATA sheet or columns missing"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Router       /api/analyze/upload [post]
func (h *AnalysisHandler) Upload(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			builder.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyFileTooLarge, err)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyMissingFile, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	filename := c.PostForm("filename")
	if filename == "" {
		filename = header.Filename
	}

	result, err := h.analyzer.Analyze(c.Request.Context(), service.AnalyzeInput{
		Data:      data,
		Filename:  filename,
		RequestID: middleware.GetRequestID(c),
	})
	if err != nil {
		builder.AnalysisError(err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.OutputFilename}))
	c.Header(InputSHA256Header, result.InputSHA256)
	c.Header(CachedHeader, strconv.FormatBool(result.Cached))
	c.Data(http.StatusOK, XLSXContentType, result.Report)
}

// Invoke handles POST /api/invoke. The request body is passed to the
// adapter as the event body and the adapter's status and body are returned
// unchanged.
//
// @Summary      Invoke the request adapter
// @Description  Runs the adapter on the raw body {file, filename}. Successes return {file, filename}; every failure returns 500 with {error, type}.
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request body dto.AnalyzeRequest true "Workbook to analyze"
// @Success      200 {object} adapter.Success
// @Failure      500 {object} adapter.Failure
// @Security     ApiKeyAuth
// @Router       /api/invoke [post]
func (h *AnalysisHandler) Invoke(c *gin.Context) {
	body := c.Request.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, base64Len(h.maxBytes)+multipartOverhead)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			NewResponseBuilder(c).Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyFileTooLarge, err)
			return
		}
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	resp := h.invoker.Handle(c.Request.Context(), adapter.Event{
		Body:    string(raw),
		Headers: map[string]string{middleware.RequestIDHeader: middleware.GetRequestID(c)},
	})

	// CORS is owned by the router's middleware.
	contentType := "application/json"
	for k, v := range resp.Headers {
		switch {
		case strings.EqualFold(k, "Content-Type"):
			contentType = v
		case strings.HasPrefix(strings.ToLower(k), "access-control-"):
		default:
			c.Header(k, v)
		}
	}
	c.Data(resp.StatusCode, contentType, []byte(resp.Body))
}

// base64Len is the encoded size of n bytes.
func base64Len(n int64) int64 {
	return (n + 2) / 3 * 4
}
