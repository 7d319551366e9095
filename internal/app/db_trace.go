package app

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const maxTracedQueryLength = 512

var (
	queryLineCommentRegex = regexp.MustCompile(`--[^\n]*`)
	queryWhitespaceRegex  = regexp.MustCompile(`\s+`)
)

// formatDBQueryForTrace flattens a query onto one line for the db.statement attribute.
// Line comments are dropped and long statements are cut on a rune boundary.
func formatDBQueryForTrace(query string) string {
	query = queryLineCommentRegex.ReplaceAllString(query, " ")
	query = strings.TrimSpace(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(query) <= maxTracedQueryLength {
		return query
	}

	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
