package sqltext

import "strings"

// AddQuotes rewrites backtick-quoted identifiers as double-quoted ones by
// replacing every backtick with a double quote. The second value is an error
// message slot kept for callers that expect one; it is always empty.
func AddQuotes(sql string) (string, string) {
	return strings.ReplaceAll(sql, "`", `"`), ""
}
