package handlers

import (
	"analytics-core/sqltext"
	"analytics-core/web/middleware"
	"analytics-core/web/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SQLHandler exposes the SQL text transforms over HTTP.
type SQLHandler struct {
	cache  *sqltext.Cache
	logger *zap.Logger
}

// NewSQLHandler creates a handler. A nil cache computes every sanitize request.
func NewSQLHandler(cache *sqltext.Cache, logger *zap.Logger) *SQLHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLHandler{
		cache:  cache,
		logger: logger,
	}
}

func (h *SQLHandler) requestLogger(c *gin.Context) *zap.Logger {
	if logger := middleware.LoggerFrom(c); logger != nil {
		return logger
	}
	return h.logger
}

// Clean handles POST /v1/sql/clean.
func (h *SQLHandler) Clean(c *gin.Context) {
	var req types.CleanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, h.requestLogger(c))
		return
	}

	c.JSON(http.StatusOK, types.SQLResponse{SQL: sqltext.CleanGenerationResult(*req.Text)})
}

// RemoveLimit handles POST /v1/sql/remove-limit.
func (h *SQLHandler) RemoveLimit(c *gin.Context) {
	var req types.SQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, h.requestLogger(c))
		return
	}

	c.JSON(http.StatusOK, types.SQLResponse{SQL: sqltext.RemoveLimitStatement(*req.SQL)})
}

// AddQuotes handles POST /v1/sql/add-quotes.
func (h *SQLHandler) AddQuotes(c *gin.Context) {
	var req types.SQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, h.requestLogger(c))
		return
	}

	quoted, errMsg := sqltext.AddQuotes(*req.SQL)
	c.JSON(http.StatusOK, types.QuotedSQLResponse{SQL: quoted, Error: errMsg})
}

// Sanitize handles POST /v1/sql/sanitize.
func (h *SQLHandler) Sanitize(c *gin.Context) {
	var req types.SanitizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, err, h.requestLogger(c))
		return
	}

	opts := sqltext.Options{
		ExtractCodeBlock: req.ExtractCodeBlock,
		RemoveLimit:      req.RemoveLimit,
		AddQuotes:        req.AddQuotes,
	}
	res := h.cache.Sanitize(*req.Text, opts)

	h.requestLogger(c).Debug("Sanitized generation result",
		zap.Int("input_length", len(*req.Text)),
		zap.Int("output_length", len(res.SQL)),
		zap.Bool("extracted", res.Extracted))

	c.JSON(http.StatusOK, res)
}

// Health handles GET /health.
func (h *SQLHandler) Health(c *gin.Context) {
	hits, misses := h.cache.Stats()
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:      "ok",
		CacheSize:   h.cache.Len(),
		CacheHits:   hits,
		CacheMisses: misses,
	})
}
