// Package sqltext post-processes SQL text produced by a language model before
// it is handed to an execution engine. The transforms are pure string
// functions: they never parse or validate SQL and never fail.
package sqltext
