package sqltext

// Options selects the optional steps of Sanitize. Cleaning always runs.
type Options struct {
	ExtractCodeBlock bool `json:"extract_code_block"`
	RemoveLimit      bool `json:"remove_limit"`
	AddQuotes        bool `json:"add_quotes"`
}

// Result is the outcome of Sanitize.
type Result struct {
	SQL       string `json:"sql"`
	// Error carries the message slot of AddQuotes.
	Error     string `json:"error"`
	// Extracted is true when the SQL was taken from a fenced code block.
	Extracted bool   `json:"extracted"`
}

// Sanitize runs the post-processing steps in pipeline order: code block
// extraction, cleaning, trailing LIMIT removal and identifier quoting. Text
// without a usable code block is cleaned as a whole.
func Sanitize(text string, opts Options) Result {
	var res Result

	if opts.ExtractCodeBlock {
		if block, ok := ExtractCodeBlock(text); ok {
			text = block
			res.Extracted = true
		}
	}

	sql := CleanGenerationResult(text)

	if opts.RemoveLimit {
		sql = RemoveLimitStatement(sql)
	}

	if opts.AddQuotes {
		sql, res.Error = AddQuotes(sql)
	}

	res.SQL = sql
	return res
}
