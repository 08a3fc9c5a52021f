package web

import (
	"analytics-core/config"
	"analytics-core/sqltext"
	"analytics-core/web/middleware"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	cache, err := sqltext.NewCache(cfg.CacheSize)
	require.NoError(t, err)

	s := NewServer(cache, zap.NewNop(), cfg)
	t.Cleanup(s.Close)
	return s
}

func testConfig() *config.Config {
	return &config.Config{
		MaxRequestBytes:          1 << 20,
		CacheSize:                16,
		RateLimitCleanupInterval: time.Minute,
		ShutdownTimeout:          time.Second,
	}
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCleanEndpoint(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := post(t, s, "/v1/sql/clean", `{"text": "`+"```sql\\nSELECT 1;\\n```"+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SELECT 1", decode(t, rec)["sql"])
}

func TestCleanEndpointAcceptsEmptyText(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := post(t, s, "/v1/sql/clean", `{"text": ""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", decode(t, rec)["sql"])
}

func TestRemoveLimitEndpoint(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := post(t, s, "/v1/sql/remove-limit", `{"sql": "SELECT * FROM t LIMIT 10 -- top ten"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SELECT * FROM t", decode(t, rec)["sql"])

	rec = post(t, s, "/v1/sql/remove-limit", `{"sql": "SELECT * FROM (SELECT * FROM t LIMIT 5) x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "SELECT * FROM (SELECT * FROM t LIMIT 5) x", decode(t, rec)["sql"])
}

func TestAddQuotesEndpoint(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := post(t, s, "/v1/sql/add-quotes", `{"sql": "SELECT `+"`col`"+` FROM `+"`table`"+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, `SELECT "col" FROM "table"`, body["sql"])
	assert.Equal(t, "", body["error"])
}

func TestSanitizeEndpoint(t *testing.T) {
	s := newTestServer(t, testConfig())

	payload, err := json.Marshal(map[string]any{
		"text":               "Here you go:\n\n```sql\nSELECT `id` FROM `orders` LIMIT 20;\n```\n",
		"extract_code_block": true,
		"remove_limit":       true,
		"add_quotes":         true,
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		rec := post(t, s, "/v1/sql/sanitize", string(payload))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, `SELECT "id" FROM "orders"`, body["sql"])
		assert.Equal(t, "", body["error"])
		assert.Equal(t, true, body["extracted"])
	}

	hits, misses := s.cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestBadRequests(t *testing.T) {
	s := newTestServer(t, testConfig())

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed_json", "/v1/sql/clean", `{"text":`},
		{"missing_text", "/v1/sql/clean", `{}`},
		{"wrong_field", "/v1/sql/remove-limit", `{"text": "SELECT 1"}`},
		{"wrong_type", "/v1/sql/add-quotes", `{"sql": 42}`},
		{"missing_sanitize_text", "/v1/sql/sanitize", `{"remove_limit": true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid request body", decode(t, rec)["error"])
		})
	}
}

func TestOversizedBody(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRequestBytes = 64
	s := newTestServer(t, cfg)

	rec := post(t, s, "/v1/sql/clean", `{"text": "`+strings.Repeat("a", 200)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRequestsPerMin = 1
	cfg.RateLimitBurstSize = 2
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		rec := post(t, s, "/v1/sql/add-quotes", `{"sql": "SELECT 1"}`)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := post(t, s, "/v1/sql/add-quotes", `{"sql": "SELECT 1"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := post(t, s, "/v1/sql/add-quotes", `{"sql": "SELECT 1"}`)
	generated := rec.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, generated)

	const supplied = "3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b"
	req := httptest.NewRequest(http.MethodPost, "/v1/sql/add-quotes", strings.NewReader(`{"sql": "SELECT 1"}`))
	req.Header.Set(middleware.RequestIDHeader, supplied)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, supplied, rec.Header().Get(middleware.RequestIDHeader))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(0), body["cache_size"])
}
