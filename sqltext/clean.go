package sqltext

import (
	"regexp"
	"strings"
)

// whitespaceClass matches a single Unicode White_Space character. RE2's \s is
// ASCII only, so vertical tab, NEL and the \p{Z} separators are added.
const whitespaceClass = `[\s\v\x{85}\p{Z}]`

var whitespaceRun = regexp.MustCompile(whitespaceClass + `+`)

// generationArtifacts are stripped from model output in this order. The
// language-tagged fences must go before the bare fence, otherwise "```sql"
// would leave a stray "sql" behind.
var generationArtifacts = []string{
	"```sql",
	"```json",
	`"""`,
	"'''",
	"```",
	";",
}

// CleanGenerationResult normalizes raw model output wrapping a SQL statement.
// Whitespace runs are collapsed to a single space first, then code fences,
// triple quotes and semicolons are removed, and the result is trimmed.
//
// Whitespace is collapsed only once, before removal, so removing a marker that
// sits between two spaces leaves a double space in the output.
func CleanGenerationResult(result string) string {
	cleaned := whitespaceRun.ReplaceAllLiteralString(result, " ")

	for _, artifact := range generationArtifacts {
		cleaned = strings.ReplaceAll(cleaned, artifact, "")
	}

	return strings.TrimSpace(cleaned)
}
