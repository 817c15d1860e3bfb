// Package middleware provides gin middleware for the packing report API.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	// MaxRequestIDLength bounds a client supplied id.
	MaxRequestIDLength = 128
)

// ContextKey names values stored on the gin context.
type ContextKey string

// RequestIDKey holds the request id on the gin context.
const RequestIDKey ContextKey = "request_id"

// RequestID assigns every request an id. A client supplied X-Request-ID is
// kept when it is short and printable, so it can be echoed in headers and
// stored with the analysis history; otherwise a UUID v4 replaces it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch ch := id[i]; {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.', ch == ':':
		default:
			return false
		}
	}
	return true
}

// GetRequestID returns the id set by RequestID, or "" outside it.
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}
