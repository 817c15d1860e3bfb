// Package adapter handles serverless-style invocations: a JSON event carrying
// a base64 workbook in, a JSON response carrying the base64 report out.
//
// Every failure, including a panic, becomes a 500 response with an error
// message and kind. A response never carries a partial report.
package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	"github.com/guttosm/packing-report/internal/logger"
	"github.com/guttosm/packing-report/internal/service"
)

var (
	// ErrMissingBody is returned when the event has no body.
	ErrMissingBody = errors.New("no body in request")
	// ErrInvalidBody is returned when the body is not a JSON object.
	ErrInvalidBody = errors.New("request body is not valid JSON")
	// ErrMissingFile is returned when the body has no file field.
	ErrMissingFile = errors.New("no file in request body")
	// ErrInvalidBase64 is returned when a payload is not valid base64.
	ErrInvalidBase64 = errors.New("file is not valid base64")
)

// Event is an HTTP-style invocation.
type Event struct {
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
	Headers         map[string]string `json:"headers,omitempty"`
}

// Response is returned for every invocation.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Request is the JSON body of an Event.
type Request struct {
	File     string `json:"file"`
	Filename string `json:"filename,omitempty"`
}

// Success is the body of a 200 response.
type Success struct {
	File     string `json:"file"`
	Filename string `json:"filename"`
}

// Failure is the body of a 500 response.
type Failure struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// Handler runs analyses for invocation events.
type Handler struct {
	analyzer service.AnalysisService
}

// New creates a Handler backed by analyzer.
func New(analyzer service.AnalysisService) *Handler {
	return &Handler{analyzer: analyzer}
}

// Handle processes one event. It never returns an error; failures are
// reported in the Response.
func (h *Handler) Handle(ctx context.Context, event Event) (resp Response) {
	requestID := requestIDFrom(event.Headers)
	log := logger.WithContext(map[string]interface{}{
		"component":  "adapter",
		"request_id": requestID,
	})

	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("PANIC recovered in adapter")
			resp = failure(fmt.Errorf("unexpected error: %v", r), service.KindInternal)
		}
	}()

	req, err := DecodeEvent(event)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected invocation")
		return failure(err, ErrorKind(err))
	}

	data, err := DecodeFile(req.File)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected invocation")
		return failure(err, ErrorKind(err))
	}

	log.Info().
		Str("filename", req.Filename).
		Int("bytes", len(data)).
		Msg("Processing file")

	result, err := h.analyzer.Analyze(ctx, service.AnalyzeInput{
		Data:      data,
		Filename:  req.Filename,
		RequestID: requestID,
	})
	if err != nil {
		kind := ErrorKind(err)
		log.Error().Err(err).Str("kind", kind).Str("filename", req.Filename).Msg("Invocation failed")
		return failure(err, kind)
	}

	return respond(http.StatusOK, Success{
		File:     base64.StdEncoding.EncodeToString(result.Report),
		Filename: result.OutputFilename,
	})
}

// DecodeEvent extracts the request from an event body.
func DecodeEvent(event Event) (Request, error) {
	var req Request
	body := event.Body
	if strings.TrimSpace(body) == "" {
		return req, ErrMissingBody
	}
	if event.IsBase64Encoded {
		raw, err := DecodeFile(body)
		if err != nil {
			return req, fmt.Errorf("%w: body", ErrInvalidBase64)
		}
		body = string(raw)
	}
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return req, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if req.File == "" {
		return req, ErrMissingFile
	}
	return req, nil
}

// DecodeFile decodes standard base64, tolerating missing padding and a
// data URL prefix.
func DecodeFile(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}
	if s == "" {
		return nil, ErrMissingFile
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return data, nil
}

// ErrorKind extends service.ErrorKind with the adapter's decoding errors.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMissingBody),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrInvalidBase64):
		return service.KindValidation
	default:
		return service.ErrorKind(err)
	}
}

func requestIDFrom(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, "X-Request-ID") && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

func failure(err error, kind string) Response {
	return respond(http.StatusInternalServerError, Failure{Error: err.Error(), Type: kind})
}

func respond(status int, body interface{}) Response {
	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload = []byte(`{"error":"failed to encode response","type":"InternalError"}`)
	}
	return Response{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(payload),
	}
}
