package types

// CleanRequest carries raw model output to be cleaned.
type CleanRequest struct {
	Text *string `json:"text" binding:"required"`
}

// SQLRequest carries a single SQL statement.
type SQLRequest struct {
	SQL *string `json:"sql" binding:"required"`
}

// SanitizeRequest selects the optional pipeline steps for a piece of model output.
type SanitizeRequest struct {
	Text             *string `json:"text" binding:"required"`
	ExtractCodeBlock bool    `json:"extract_code_block"`
	RemoveLimit      bool    `json:"remove_limit"`
	AddQuotes        bool    `json:"add_quotes"`
}

// SQLResponse is returned by the clean and remove-limit endpoints.
type SQLResponse struct {
	SQL string `json:"sql"`
}

// QuotedSQLResponse mirrors the (sql, error) pair of the quoting transform.
type QuotedSQLResponse struct {
	SQL   string `json:"sql"`
	Error string `json:"error"`
}

// HealthResponse reports liveness and result cache counters.
type HealthResponse struct {
	Status      string `json:"status"`
	CacheSize   int    `json:"cache_size"`
	CacheHits   int64  `json:"cache_hits"`
	CacheMisses int64  `json:"cache_misses"`
}
