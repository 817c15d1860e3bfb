package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/adapter"
	"github.com/guttosm/packing-report/internal/domain/dto"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/guttosm/packing-report/internal/middleware"
	"github.com/guttosm/packing-report/internal/packinglist"
	"github.com/guttosm/packing-report/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var workbookBytes = []byte("PK\x03\x04 packing list")

func sampleResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		Analysis: &model.Analysis{
			Summary: model.Summary{
				Categories: []model.Category{model.CategoryOne, model.CategoryOneStar, model.CategoryTwo},
				Rows: []model.SizeSummary{
					{Size: 14, Boxes: 15, Percentage: 83.33, ByCategory: map[model.Category]int{model.CategoryOne: 10, model.CategoryTwo: 5}},
					{Size: 16, Boxes: 3, Percentage: 16.67, ByCategory: map[model.Category]int{model.CategoryOneStar: 3}},
				},
				GrandTotal: 18,
			},
			ByLot: model.Breakdown{Dimension: model.DimensionLot, Groups: []model.GroupTotal{{Key: "101", Boxes: 15}, {Key: "102", Boxes: 3}}, GrandTotal: 18},
		},
		Report:         []byte("report-xlsx"),
		SourceFilename: "PACKING LIST 14.xlsx",
		OutputFilename: "PACKING LIST 14_ANALYSIS.xlsx",
		InputSHA256:    "abc123",
	}
}

func analysisRouter(h *AnalysisHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	NewAnalysisRoutes(h).RegisterRoutes(router.Group("/api"))
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(workbookBytes)

	tests := []struct {
		name           string
		body           string
		analyzeErr     error
		expectCall     bool
		expectedStatus int
		expectedCode   string
		expectedType   string
		expectedDetail map[string]string
	}{
		{
			name:           "success",
			body:           fmt.Sprintf(`{"file":%q,"filename":"PACKING LIST 14.xlsx"}`, encoded),
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid json",
			body:           `{"file":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name:           "file field absent",
			body:           `{"filename":"x.xlsx"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name:           "blank file",
			body:           `{"file":"   "}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
		},
		{
			name:           "bad base64",
			body:           `{"file":"not*base64!"}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   dto.ErrCodeInvalidRequest,
			expectedType:   service.KindValidation,
		},
		{
			name:           "not a workbook",
			body:           fmt.Sprintf(`{"file":%q}`, encoded),
			analyzeErr:     fmt.Errorf("%w: zip: not a valid zip file", packinglist.ErrInvalidWorkbook),
			expectCall:     true,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeUnprocessable,
			expectedType:   service.KindInvalidWorkbook,
		},
		{
			name:           "missing sheet",
			body:           fmt.Sprintf(`{"file":%q}`, encoded),
			analyzeErr:     fmt.Errorf("%w: %q", packinglist.ErrSheetNotFound, "DATA"),
			expectCall:     true,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeUnprocessable,
			expectedType:   service.KindMissingSheet,
		},
		{
			name:           "missing columns",
			body:           fmt.Sprintf(`{"file":%q}`, encoded),
			analyzeErr:     &packinglist.MissingColumnsError{Columns: []string{"CAT", "LOTE"}},
			expectCall:     true,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   dto.ErrCodeUnprocessable,
			expectedType:   service.KindMissingColumns,
			expectedDetail: map[string]string{"columns": "CAT, LOTE"},
		},
		{
			name:           "too large",
			body:           fmt.Sprintf(`{"file":%q}`, encoded),
			analyzeErr:     fmt.Errorf("%w: 30 bytes", service.ErrWorkbookTooLarge),
			expectCall:     true,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedCode:   dto.ErrCodePayloadTooLarge,
			expectedType:   service.KindValidation,
		},
		{
			name:           "deadline",
			body:           fmt.Sprintf(`{"file":%q}`, encoded),
			analyzeErr:     context.DeadlineExceeded,
			expectCall:     true,
			expectedStatus: http.StatusGatewayTimeout,
			expectedCode:   dto.ErrCodeTimeout,
		},
		{
			name:           "internal",
			body:           fmt.Sprintf(`{"file":%q}`, encoded),
			analyzeErr:     errors.New("render chart: boom"),
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   dto.ErrCodeInternal,
			expectedType:   service.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(mockAnalysisService)
			if tt.expectCall {
				call := analyzer.On("Analyze", mock.Anything, mock.MatchedBy(func(in service.AnalyzeInput) bool {
					return bytes.Equal(in.Data, workbookBytes) && in.RequestID != ""
				}))
				if tt.analyzeErr != nil {
					call.Return(nil, tt.analyzeErr)
				} else {
					call.Return(sampleResult(), nil)
				}
			}
			router := analysisRouter(NewAnalysisHandler(analyzer, nil, 1<<20))

			req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			analyzer.AssertExpectations(t)

			if tt.expectedStatus == http.StatusOK {
				var resp struct {
					Data      dto.AnalyzeResponse `json:"data"`
					RequestID string              `json:"request_id"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.RequestID)
				assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("report-xlsx")), resp.Data.File)
				assert.Equal(t, "PACKING LIST 14_ANALYSIS.xlsx", resp.Data.Filename)
				assert.Equal(t, 18, resp.Data.Summary.GrandTotal)
				assert.Len(t, resp.Data.LotTotals, 2)
				return
			}

			resp := decodeError(t, w)
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.Equal(t, tt.expectedType, resp.Type)
			assert.NotEmpty(t, resp.Message)
			assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), resp.RequestID)
			if tt.expectedDetail != nil {
				assert.Equal(t, tt.expectedDetail, resp.Details)
			}
		})
	}
}

func TestAnalysisHandler_Analyze_BodyTooLarge(t *testing.T) {
	analyzer := new(mockAnalysisService)
	router := analysisRouter(NewAnalysisHandler(analyzer, nil, 16))

	body := fmt.Sprintf(`{"file":%q}`, strings.Repeat("A", 2*multipartOverhead))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func multipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.SetBoundary("packing-list-boundary"))
	if content != nil {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAnalysisHandler_Upload(t *testing.T) {
	tests := []struct {
		name             string
		content          []byte
		fields           map[string]string
		expectedFilename string
		analyzeErr       error
		expectedStatus   int
	}{
		{
			name:             "uses the uploaded filename",
			content:          workbookBytes,
			expectedFilename: "PACKING LIST 14.xlsx",
			expectedStatus:   http.StatusOK,
		},
		{
			name:             "form field overrides the filename",
			content:          workbookBytes,
			fields:           map[string]string{"filename": "week 12.xlsx"},
			expectedFilename: "week 12.xlsx",
			expectedStatus:   http.StatusOK,
		},
		{
			name:           "missing file part",
			fields:         map[string]string{"filename": "x.xlsx"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:             "analysis failure",
			content:          workbookBytes,
			expectedFilename: "PACKING LIST 14.xlsx",
			analyzeErr:       fmt.Errorf("%w: %q", packinglist.ErrSheetNotFound, "DATA"),
			expectedStatus:   http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(mockAnalysisService)
			if tt.expectedFilename != "" {
				call := analyzer.On("Analyze", mock.Anything, mock.MatchedBy(func(in service.AnalyzeInput) bool {
					return in.Filename == tt.expectedFilename && bytes.Equal(in.Data, workbookBytes)
				}))
				if tt.analyzeErr != nil {
					call.Return(nil, tt.analyzeErr)
				} else {
					call.Return(sampleResult(), nil)
				}
			}
			router := analysisRouter(NewAnalysisHandler(analyzer, nil, 1<<20))

			body, contentType := multipartBody(t, "PACKING LIST 14.xlsx", tt.content, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/analyze/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			analyzer.AssertExpectations(t)
			if tt.expectedStatus != http.StatusOK {
				assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
				return
			}
			assert.Equal(t, XLSXContentType, w.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="PACKING LIST 14_ANALYSIS.xlsx"`, w.Header().Get("Content-Disposition"))
			assert.Equal(t, "abc123", w.Header().Get(InputSHA256Header))
			assert.Equal(t, "false", w.Header().Get(CachedHeader))
			assert.Equal(t, "report-xlsx", w.Body.String())
		})
	}
}

func TestAnalysisHandler_Upload_TooLarge(t *testing.T) {
	analyzer := new(mockAnalysisService)
	router := analysisRouter(NewAnalysisHandler(analyzer, nil, 16))

	body, contentType := multipartBody(t, "big.xlsx", bytes.Repeat([]byte("x"), 2*multipartOverhead), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalysisHandler_Invoke(t *testing.T) {
	invoker := new(mockInvoker)
	body := `{"file":"UEs=","filename":"a.xlsx"}`
	invoker.On("Handle", mock.Anything, mock.MatchedBy(func(e adapter.Event) bool {
		return e.Body == body && e.Headers[middleware.RequestIDHeader] == "req-1"
	})).Return(adapter.Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: `{"file":"eA==","filename":"a_ANALYSIS.xlsx"}`,
	})
	router := analysisRouter(NewAnalysisHandler(new(mockAnalysisService), invoker, 1<<20))

	req := httptest.NewRequest(http.MethodPost, "/api/invoke", strings.NewReader(body))
	req.Header.Set(middleware.RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"file":"eA==","filename":"a_ANALYSIS.xlsx"}`, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	invoker.AssertExpectations(t)
}

func TestAnalysisHandler_Invoke_WithAdapter(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		analyzeErr     error
		expectCall     bool
		expectedStatus int
		expectedType   string
	}{
		{
			name:           "success",
			body:           fmt.Sprintf(`{"file":%q}`, base64.StdEncoding.EncodeToString(workbookBytes)),
			expectCall:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty body",
			body:           "",
			expectedStatus: http.StatusInternalServerError,
			expectedType:   service.KindValidation,
		},
		{
			name:           "missing columns",
			body:           fmt.Sprintf(`{"file":%q}`, base64.StdEncoding.EncodeToString(workbookBytes)),
			analyzeErr:     &packinglist.MissingColumnsError{Columns: []string{"CAT"}},
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
			expectedType:   service.KindMissingColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := new(mockAnalysisService)
			if tt.expectCall {
				if tt.analyzeErr != nil {
					analyzer.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.analyzeErr)
				} else {
					analyzer.On("Analyze", mock.Anything, mock.Anything).Return(sampleResult(), nil)
				}
			}
			router := analysisRouter(NewAnalysisHandler(analyzer, adapter.New(analyzer), 1<<20))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/invoke", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var ok adapter.Success
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ok))
				assert.Equal(t, "PACKING LIST 14_ANALYSIS.xlsx", ok.Filename)
				return
			}
			var failure adapter.Failure
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &failure))
			assert.Equal(t, tt.expectedType, failure.Type)
			assert.NotEmpty(t, failure.Error)
			assert.NotContains(t, w.Body.String(), `"file"`)
		})
	}
}

func TestAnalysisRoutes_InvokeNeedsInvoker(t *testing.T) {
	router := analysisRouter(NewAnalysisHandler(new(mockAnalysisService), nil, 0))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/invoke", strings.NewReader("{}")))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBase64Len(t *testing.T) {
	for n, want := range map[int64]int64{0: 0, 1: 4, 3: 4, 4: 8, 30: 40} {
		assert.Equal(t, want, base64Len(n), "n=%d", n)
	}
}
