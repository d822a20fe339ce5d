package utils

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE metacharacters so term matches literally.
// PostgreSQL's default LIKE escape character is the backslash.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// ContainsPattern returns the %term% pattern for a literal substring match.
func ContainsPattern(term string) string {
	return "%" + EscapeLike(term) + "%"
}
