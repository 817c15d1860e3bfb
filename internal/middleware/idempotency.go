package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/packing-report/internal/domain/dto"
	"github.com/guttosm/packing-report/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key (RFC standard).
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute
	// IdempotencyMaxEntries bounds the number of replayable responses held.
	IdempotencyMaxEntries = 256
	// IdempotencyMaxResponseBytes is the largest response body kept for replay.
	IdempotencyMaxResponseBytes = 1 << 20
	// ReplayedHeader marks a response served from the idempotency cache.
	ReplayedHeader = "X-Idempotency-Replayed"
)

// cachedResponse stores a cached HTTP response for idempotency.
type cachedResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Timestamp  time.Time
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	Enabled bool
	// MaxBodyBytes bounds the request body read for the fingerprint; zero
	// means unbounded.
	MaxBodyBytes int64
	// MaxResponseBytes bounds the response body stored for replay; larger
	// responses are served but not kept.
	MaxResponseBytes int
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:            newIdempotencyCache(IdempotencyKeyTTL, IdempotencyMaxEntries),
		Enabled:          true,
		MaxResponseBytes: IdempotencyMaxResponseBytes,
	}
}

// Idempotency replays the stored response for a repeated POST, PUT or PATCH
// carrying the same Idempotency-Key, path and body. Only 2xx responses are
// stored, so a failed analysis can be retried with the same key.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		if cfg.MaxBodyBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxBodyBytes)
		}

		cacheKey, err := requestFingerprint(key, c.Request)
		if err != nil {
			locale := i18n.GetLocale(c)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				errorResp := dto.NewError(dto.ErrCodePayloadTooLarge, i18n.GetTranslator().Translate(i18n.ErrKeyFileTooLarge, locale)).
					WithRequestID(GetRequestID(c))
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, errorResp)
				return
			}
			errorResp := dto.NewError(dto.ErrCodeInvalidRequest, i18n.GetTranslator().Translate(i18n.ErrKeyInvalidRequestBody, locale)).
				WithRequestID(GetRequestID(c))
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResp)
			return
		}

		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			for k, v := range cached.Header {
				c.Writer.Header()[k] = v
			}
			c.Header(ReplayedHeader, "true")
			c.Status(cached.StatusCode)
			_, _ = c.Writer.Write(cached.Body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer, limit: cfg.MaxResponseBytes}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 && !writer.overflow {
			cfg.Cache.Set(cacheKey, &cachedResponse{
				StatusCode: status,
				Header:     writer.Header().Clone(),
				Body:       writer.body.Bytes(),
			})
		}
	}
}

// requestFingerprint hashes the idempotency key with the method, path and
// body, restoring the body for the handler.
func requestFingerprint(idempotencyKey string, req *http.Request) (string, error) {
	h := sha256.New()
	h.Write([]byte(idempotencyKey))
	h.Write([]byte{0})
	h.Write([]byte(req.Method))
	h.Write([]byte{0})
	h.Write([]byte(req.URL.Path))
	h.Write([]byte{0})

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return "", err
		}
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// captureWriter copies the response body while it is written. Once the body
// passes limit the copy is dropped and overflow is set.
type captureWriter struct {
	gin.ResponseWriter
	body     bytes.Buffer
	limit    int
	overflow bool
}

func (w *captureWriter) capture(n int, write func()) {
	if w.overflow {
		return
	}
	if w.limit > 0 && w.body.Len()+n > w.limit {
		w.overflow = true
		w.body = bytes.Buffer{}
		return
	}
	write()
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.capture(len(b), func() { w.body.Write(b) })
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.capture(len(s), func() { w.body.WriteString(s) })
	return w.ResponseWriter.WriteString(s)
}
