// Package handler exposes content analysis and keyword insertion over HTTP
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"github.com/seo-optimizer/content-optimizer/analyzer"
	"github.com/seo-optimizer/content-optimizer/inserter"
	"github.com/seo-optimizer/content-optimizer/logging"
	"github.com/seo-optimizer/content-optimizer/stats"
	"github.com/seo-optimizer/content-optimizer/storage"
)

// AnalysisHeader carries the id of the stored analysis record
const AnalysisHeader = "X-Analysis-ID"

// ContentAnalyzer scores content
type ContentAnalyzer interface {
	Analyze(ctx context.Context, content string) (*analyzer.AnalysisResult, error)
	GetCacheStats(ctx context.Context) analyzer.CacheStats
}

// KeywordInserter places keywords into content
type KeywordInserter interface {
	Insert(content, keyword string, position *int) (string, error)
	InsertBulk(content string, keywords []string) (inserter.BulkResult, error)
}

// Deps are the collaborators of a Handler. Monthly and Statistics are optional.
type Deps struct {
	Analyzer   ContentAnalyzer
	Inserter   KeywordInserter
	Store      storage.Store
	Monthly    *stats.Storage
	Statistics *logging.Statistics
	DevMode    bool
}

// Handler serves the /api routes
type Handler struct {
	analyzer   ContentAnalyzer
	inserter   KeywordInserter
	store      storage.Store
	monthly    *stats.Storage
	statistics *logging.Statistics
	devMode    bool
	startedAt  time.Time
}

func New(d Deps) *Handler {
	return &Handler{
		analyzer:   d.Analyzer,
		inserter:   d.Inserter,
		store:      d.Store,
		monthly:    d.Monthly,
		statistics: d.Statistics,
		devMode:    d.DevMode,
		startedAt:  time.Now(),
	}
}

// Register mounts every route on r under /api
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.POST("/analyze", h.Analyze)
	api.POST("/insert-keyword", h.InsertKeyword)
	api.POST("/insert-keywords", h.InsertKeywords)
	api.GET("/analyses", h.ListAnalyses)
	api.GET("/analyses/:id", h.GetAnalysis)
	api.GET("/statistics", h.Statistics)
	api.GET("/stats/monthly", h.MonthlyStats)
}

func (h *Handler) record(d stats.Delta) {
	if h.monthly != nil {
		h.monthly.Increment(d)
	}
}

func (h *Handler) trackKeywords(keywords ...string) {
	if h.statistics != nil {
		h.statistics.TrackKeywords(keywords...)
	}
}

func badRequest(c *gin.Context, err error) {
	log.Debug().Err(err).Str("path", c.FullPath()).Msg("Invalid request body")
	c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
		"cache":  h.analyzer.GetCacheStats(c.Request.Context()),
	})
}

func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.analyzer.Analyze(ctx, req.Content)
	if err != nil {
		if errors.Is(err, analyzer.ErrEmptyContent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
			return
		}
		log.Error().Err(err).Msg("Analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze content"})
		return
	}

	rec := &storage.Record{Content: req.Content}
	if err := h.store.Create(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("Failed to store analysis record")
	} else {
		c.Header(AnalysisHeader, strconv.FormatUint(rec.ID, 10))
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) InsertKeyword(c *gin.Context) {
	var req InsertKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	out, err := h.inserter.Insert(req.Content, req.Keyword, req.Position)
	if err != nil {
		log.Error().Err(err).Str("keyword", req.Keyword).Msg("Keyword insertion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert keyword"})
		return
	}

	inserted := keywordInserted(req.Content, out, req.Keyword)

	h.trackKeywords(req.Keyword)
	d := stats.Delta{Insertions: 1, KeywordsSkipped: 1}
	if inserted {
		d.KeywordsInserted, d.KeywordsSkipped = 1, 0
	}
	h.record(d)

	c.JSON(http.StatusOK, InsertKeywordResponse{
		OptimizedContent: out,
		OriginalLength:   utf8.RuneCountInString(req.Content),
		NewLength:        utf8.RuneCountInString(out),
		KeywordInserted:  inserted,
	})
}

// keywordInserted reports whether out differs from content and carries the
// keyword with its whitespace collapsed, the form the engine inserts.
func keywordInserted(content, out, keyword string) bool {
	kw := strings.ToLower(strings.Join(strings.Fields(keyword), " "))
	return kw != "" && out != content && strings.Contains(strings.ToLower(out), kw)
}

func (h *Handler) InsertKeywords(c *gin.Context) {
	var req InsertKeywordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.inserter.InsertBulk(req.Content, req.Keywords)
	if err != nil {
		log.Error().Err(err).Int("keywords", len(req.Keywords)).Msg("Bulk keyword insertion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert keywords"})
		return
	}

	h.trackKeywords(req.Keywords...)
	h.record(stats.Delta{
		BulkInsertions:   1,
		KeywordsInserted: len(res.Inserted),
		KeywordsSkipped:  len(res.Skipped),
	})

	c.JSON(http.StatusOK, InsertKeywordsResponse{
		OptimizedContent: res.Content,
		InsertedKeywords: res.Inserted,
		SkippedKeywords:  res.Skipped,
		TotalInserted:    len(res.Inserted),
	})
}

func (h *Handler) ListAnalyses(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list analyses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": records, "total": len(records)})
}

func (h *Handler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis id"})
		return
	}

	rec, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
			return
		}
		log.Error().Err(err).Uint64("id", id).Msg("Failed to get analysis")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get analysis"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) Statistics(c *gin.Context) {
	if h.statistics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Statistics are disabled"})
		return
	}
	c.JSON(http.StatusOK, h.statistics.GetStatistics(h.devMode))
}

// MonthlyStats returns the counters of ?month=YYYY-MM, or of the current
// month, along with the list of months on record.
func (h *Handler) MonthlyStats(c *gin.Context) {
	if h.monthly == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Statistics are disabled"})
		return
	}

	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	} else if _, err := time.Parse("2006-01", month); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted YYYY-MM"})
		return
	}

	counters, _ := h.monthly.GetMonthlyStats(month)
	c.JSON(http.StatusOK, gin.H{
		"month":  month,
		"stats":  counters,
		"months": h.monthly.GetAllMonths(),
	})
}
