package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/guttosm/packing-report/internal/service"
)

const fallbackWriteTimeout = 5 * time.Second

// AuditLog records an action taken through the API, such as an analysis or
// a size order change.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := requestEntry(c, "info", message)
	entry.ActionType = actionType
	entry.Fields = fields
	persist(loggingService, entry)
}

// AuditLogError records a failed action.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if loggingService == nil {
		return
	}
	entry := requestEntry(c, "error", message)
	entry.ActionType = actionType
	entry.Fields = fields
	if err != nil {
		entry.Error = err.Error()
	}
	persist(loggingService, entry)
}

func requestEntry(c *gin.Context, level, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// persist hands entry to the global async logger, or writes it from a
// goroutine when no async logger is running.
func persist(loggingService service.LoggingService, entry *model.LogEntry) {
	if al := GetAsyncLogger(); al != nil {
		al.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fallbackWriteTimeout)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
