package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/packing-report/internal/analysis"
	"github.com/guttosm/packing-report/internal/domain/model"
	"github.com/guttosm/packing-report/internal/logger"
	"github.com/guttosm/packing-report/internal/metrics"
	"github.com/guttosm/packing-report/internal/packinglist"
	"github.com/guttosm/packing-report/internal/report"
	"github.com/guttosm/packing-report/internal/repository"
	"github.com/guttosm/packing-report/internal/service/cache"
)

// DefaultFilename names workbooks submitted without a filename.
const DefaultFilename = "packing_list.xlsx"

const historyWriteTimeout = 3 * time.Second

// AnalyzeInput is one workbook submitted for analysis.
type AnalyzeInput struct {
	Data      []byte
	Filename  string
	RequestID string
	// SizeOrder overrides the resolved size order when set.
	SizeOrder []int
}

// AnalysisService turns packing list workbooks into report workbooks.
type AnalysisService interface {
	Analyze(ctx context.Context, in AnalyzeInput) (*model.AnalysisResult, error)
}

// AuditSink accepts audit entries without blocking.
type AuditSink interface {
	Log(entry *model.LogEntry) bool
}

// SizeOrderResolver supplies the size order for an analysis.
type SizeOrderResolver interface {
	Resolve(ctx context.Context) []int
}

// AnalysisServiceImpl reads, aggregates and renders workbooks, caching
// aggregated results by content.
type AnalysisServiceImpl struct {
	sizeOrders    SizeOrderResolver
	reportOptions report.Options
	maxBytes      int
	cache         cache.Cache
	history       repository.AnalysesRepositoryInterface
	audit         AuditSink
	now           func() time.Time
}

// AnalysisOption configures an AnalysisServiceImpl.
type AnalysisOption func(*AnalysisServiceImpl)

// WithSizeOrders sets where the size order comes from. Without it the
// built-in order is used.
func WithSizeOrders(r SizeOrderResolver) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		s.sizeOrders = r
	}
}

// WithReportOptions sets title, chart title and formula rendering.
func WithReportOptions(opts report.Options) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		s.reportOptions = opts
	}
}

// WithMaxBytes rejects workbooks larger than n bytes. Zero disables the check.
func WithMaxBytes(n int) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		s.maxBytes = n
	}
}

// WithCache enables result caching with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		if capacity > 0 {
			s.cache = NewShardedCache(capacity, ttl, defaultShards)
		}
	}
}

// WithCacheInterface injects a cache implementation.
func WithCacheInterface(c cache.Cache) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		s.cache = c
	}
}

// WithHistory records every analysis in repo.
func WithHistory(repo repository.AnalysesRepositoryInterface) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		s.history = repo
	}
}

// WithAudit sends an audit entry per analysis to sink.
func WithAudit(sink AuditSink) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		s.audit = sink
	}
}

// WithClock overrides time.Now for the report date.
func WithClock(now func() time.Time) AnalysisOption {
	return func(s *AnalysisServiceImpl) {
		s.now = now
	}
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(opts ...AnalysisOption) *AnalysisServiceImpl {
	s := &AnalysisServiceImpl{
		reportOptions: report.DefaultOptions(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the full pipeline for one workbook. Input problems are
// returned as errors classified by ErrorKind; nothing partial is returned.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, in AnalyzeInput) (*model.AnalysisResult, error) {
	start := time.Now()
	log := logger.WithContext(map[string]interface{}{
		"component":  "analysis",
		"request_id": in.RequestID,
	})

	result, err := s.analyze(ctx, in)
	elapsed := time.Since(start)
	if err != nil {
		kind := ErrorKind(err)
		metrics.RecordAnalysis(elapsed, kind)
		event := log.Warn()
		if kind == KindInternal {
			event = log.Error()
		}
		event.Err(err).Str("kind", kind).Str("filename", in.Filename).Int("bytes", len(in.Data)).Msg("Analysis failed")
		s.auditFailure(in, kind, err)
		return nil, err
	}

	result.DurationMs = elapsed.Milliseconds()
	metrics.RecordAnalysis(elapsed, "success")
	log.Info().
		Str("source", result.SourceFilename).
		Int("grand_total", result.Analysis.Summary.GrandTotal).
		Int("sizes", len(result.Analysis.Summary.Rows)).
		Bool("cached", result.Cached).
		Dur("duration", elapsed).
		Msg("Analysis completed")

	s.recordHistory(ctx, result, len(in.Data))
	s.auditSuccess(result)
	return result, nil
}

func (s *AnalysisServiceImpl) analyze(ctx context.Context, in AnalyzeInput) (*model.AnalysisResult, error) {
	if len(in.Data) == 0 {
		return nil, ErrEmptyWorkbook
	}
	if s.maxBytes > 0 && len(in.Data) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrWorkbookTooLarge, len(in.Data), s.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filename := in.Filename
	if strings.TrimSpace(filename) == "" {
		filename = DefaultFilename
	}

	order := in.SizeOrder
	if len(order) == 0 {
		order = s.resolveOrder(ctx)
	}

	digest := sha256.Sum256(in.Data)
	sum := hex.EncodeToString(digest[:])
	key := s.cacheKey(sum, filename, order)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			data, err := s.render(cached.Analysis, filename)
			if err != nil {
				return nil, err
			}
			out := *cached
			out.Report = data
			out.RequestID = in.RequestID
			out.Cached = true
			return &out, nil
		}
	}

	table, err := packinglist.ReadBytes(in.Data)
	if err != nil {
		return nil, err
	}

	a := analysis.Analyze(table.Records, analysis.WithSizeOrder(order))
	a.Coercion.SkippedBlankRows = table.BlankRows
	if err := a.Verify(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInconsistentAnalysis, err)
	}

	data, err := s.render(a, filename)
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkbook(len(in.Data), a.Coercion.RowsRead, categoryTotals(a))
	metrics.RecordCoercions("excluded_size", a.Coercion.ExcludedSizes)
	metrics.RecordCoercions("zeroed_quantity", a.Coercion.ZeroedQuantities)
	metrics.RecordCoercions("unknown_category", len(a.Coercion.UnknownCategories))

	result := &model.AnalysisResult{
		Analysis:       a,
		Report:         data,
		SourceFilename: filename,
		OutputFilename: report.OutputFilename(filename),
		InputSHA256:    sum,
		SizeOrder:      slices.Clone(order),
	}
	if s.cache != nil {
		stored := *result
		stored.Report = nil
		s.cache.Set(key, &stored)
	}

	out := *result
	out.RequestID = in.RequestID
	return &out, nil
}

// render writes the report workbook dated now. Cached results keep only the
// analysis, so a hit is re-rendered and never carries an earlier date.
func (s *AnalysisServiceImpl) render(a *model.Analysis, filename string) ([]byte, error) {
	opts := s.reportOptions
	opts.SourceName = filename
	opts.GeneratedAt = s.now()
	return report.Bytes(a, opts)
}

func (s *AnalysisServiceImpl) resolveOrder(ctx context.Context) []int {
	if s.sizeOrders == nil {
		return slices.Clone(analysis.DefaultSizeOrder)
	}
	return s.sizeOrders.Resolve(ctx)
}

// cacheKey covers everything that changes the rendered workbook except the
// generation date.
func (s *AnalysisServiceImpl) cacheKey(sum, filename string, order []int) string {
	var b strings.Builder
	b.WriteString(sum)
	b.WriteByte('|')
	b.WriteString(filename)
	b.WriteByte('|')
	for i, size := range order {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(size))
	}
	b.WriteByte('|')
	b.WriteString(s.reportOptions.Title)
	b.WriteByte('|')
	b.WriteString(s.reportOptions.ChartTitle)
	b.WriteByte('|')
	b.WriteString(strconv.FormatBool(s.reportOptions.FormulaTotals))
	return b.String()
}

// ClearCache drops every cached result.
func (s *AnalysisServiceImpl) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// CacheMetrics reports cache statistics when the cache supports them.
func (s *AnalysisServiceImpl) CacheMetrics() (cache.Metrics, bool) {
	if c, ok := s.cache.(cache.CacheWithMetrics); ok {
		return c.Metrics(), true
	}
	return cache.Metrics{}, false
}

// Close stops background cache maintenance.
func (s *AnalysisServiceImpl) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

func (s *AnalysisServiceImpl) recordHistory(ctx context.Context, r *model.AnalysisResult, inputBytes int) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), historyWriteTimeout)
	defer cancel()

	a := r.Analysis
	doc := &repository.AnalysisDocument{
		RequestID:         r.RequestID,
		SourceFilename:    r.SourceFilename,
		OutputFilename:    r.OutputFilename,
		InputSHA256:       r.InputSHA256,
		InputBytes:        inputBytes,
		GrandTotal:        a.Summary.GrandTotal,
		CategoryTotals:    categoryTotals(a),
		SizeCount:         len(a.Summary.Rows),
		LotCount:          len(a.ByLot.Groups),
		LocationCount:     len(a.ByLocation.Groups),
		RowsRead:          a.Coercion.RowsRead,
		ExcludedSizes:     a.Coercion.ExcludedSizes,
		ZeroedQuantities:  a.Coercion.ZeroedQuantities,
		UnknownCategories: a.Coercion.UnknownCategories,
		SizeOrder:         r.SizeOrder,
		DurationMs:        r.DurationMs,
		Cached:            r.Cached,
	}
	if err := s.history.Create(ctx, doc); err != nil {
		l := logger.Component("analysis")
		l.Warn().Err(err).Str("request_id", r.RequestID).Msg("Failed to record analysis history")
	}
}

func (s *AnalysisServiceImpl) auditSuccess(r *model.AnalysisResult) {
	if s.audit == nil {
		return
	}
	entry := &model.LogEntry{
		Timestamp:  s.now().UTC(),
		Level:      "info",
		Message:    "packing list analyzed",
		RequestID:  r.RequestID,
		ActionType: model.ActionAnalyze,
		Duration:   r.DurationMs,
	}
	entry.WithFields(map[string]interface{}{
		"source_filename": r.SourceFilename,
		"output_filename": r.OutputFilename,
		"input_sha256":    r.InputSHA256,
		"grand_total":     r.Analysis.Summary.GrandTotal,
		"cached":          r.Cached,
	})
	s.audit.Log(entry)
}

func (s *AnalysisServiceImpl) auditFailure(in AnalyzeInput, kind string, err error) {
	if s.audit == nil {
		return
	}
	entry := &model.LogEntry{
		Timestamp:  s.now().UTC(),
		Level:      "error",
		Message:    "packing list analysis failed",
		RequestID:  in.RequestID,
		ActionType: model.ActionAnalyze,
		Error:      err.Error(),
	}
	entry.WithFields(map[string]interface{}{
		"source_filename": in.Filename,
		"kind":            kind,
		"input_bytes":     len(in.Data),
	})
	s.audit.Log(entry)
}

func categoryTotals(a *model.Analysis) map[string]int {
	out := make(map[string]int, len(a.Summary.CategoryTotals))
	for c, n := range a.Summary.CategoryTotals {
		out[string(c)] = n
	}
	return out
}
