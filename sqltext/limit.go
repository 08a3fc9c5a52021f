package sqltext

import "regexp"

// trailingLimit matches a LIMIT <n> clause at the very end of a statement,
// optionally followed by a semicolon and/or a single-line "--" comment.
// Equivalent to (?i)\s*LIMIT\s+\d+(\s*;?\s*--.*|\s*;?\s*)$ with Unicode \s.
var trailingLimit = regexp.MustCompile(
	`(?i)` + whitespaceClass + `*LIMIT` + whitespaceClass + `+\p{Nd}+` +
		`(` + whitespaceClass + `*;?` + whitespaceClass + `*--.*` +
		`|` + whitespaceClass + `*;?` + whitespaceClass + `*)$`,
)

// RemoveLimitStatement strips a trailing LIMIT clause from sql. A LIMIT that
// is not the last clause, such as one inside a subquery, is left alone. When
// nothing matches, sql is returned unchanged.
func RemoveLimitStatement(sql string) string {
	return trailingLimit.ReplaceAllLiteralString(sql, "")
}
