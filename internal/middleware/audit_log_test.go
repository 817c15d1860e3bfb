package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/guttosm/packing-report/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func auditContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPut, "/api/size-order", nil)
	c.Request.Header.Set("User-Agent", "test-agent")
	c.Set(string(RequestIDKey), "req-audit")
	return c
}

// captureEntry returns a channel receiving the entry passed to CreateLog.
func captureEntry(m *mocks.MockLoggingService) <-chan *model.LogEntry {
	ch := make(chan *model.LogEntry, 1)
	m.On("CreateLog", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		ch <- args.Get(1).(*model.LogEntry)
	}).Return(nil).Once()
	return ch
}

func receive(t *testing.T, ch <-chan *model.LogEntry) *model.LogEntry {
	t.Helper()
	select {
	case entry := <-ch:
		return entry
	case <-time.After(time.Second):
		require.FailNow(t, "no log entry written")
		return nil
	}
}

func TestAuditLog(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	ch := captureEntry(svc)

	AuditLog(svc, auditContext(t), model.ActionUpdateSizeOrder, "size order updated", map[string]interface{}{"version": 4})

	entry := receive(t, ch)
	assert.Equal(t, "info", entry.Level)
	assert.Equal(t, model.ActionUpdateSizeOrder, entry.ActionType)
	assert.Equal(t, "req-audit", entry.RequestID)
	assert.Equal(t, http.MethodPut, entry.Method)
	assert.Equal(t, "/api/size-order", entry.Path)
	assert.Equal(t, "test-agent", entry.UserAgent)
	assert.Equal(t, 4, entry.Fields["version"])
	assert.Empty(t, entry.Error)
}

func TestAuditLogError(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	ch := captureEntry(svc)

	AuditLogError(svc, auditContext(t), model.ActionAnalyze, "analysis failed", errors.New("missing sheet"), nil)

	entry := receive(t, ch)
	assert.Equal(t, "error", entry.Level)
	assert.Equal(t, "missing sheet", entry.Error)
}

func TestAuditLog_NilService(t *testing.T) {
	assert.NotPanics(t, func() {
		AuditLog(nil, auditContext(t), model.ActionAnalyze, "ignored", nil)
		AuditLogError(nil, auditContext(t), model.ActionAnalyze, "ignored", errors.New("x"), nil)
	})
}

func TestAuditLog_UsesAsyncLogger(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	written := make(chan []*model.LogEntry, 1)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written <- args.Get(1).([]*model.LogEntry)
	}).Return(nil)

	InitAsyncLogger(svc, AsyncLoggerConfig{BatchSize: 1, FlushInterval: time.Hour})
	defer StopAsyncLogger()

	AuditLog(svc, auditContext(t), model.ActionInvoke, "invoked", nil)

	select {
	case batch := <-written:
		require.Len(t, batch, 1)
		assert.Equal(t, model.ActionInvoke, batch[0].ActionType)
	case <-time.After(time.Second):
		t.Fatal("async logger did not write the entry")
	}
	svc.AssertNotCalled(t, "CreateLog", mock.Anything, mock.Anything)
}
