package search

import (
	"strconv"
	"strings"
)

// scopes restricts the free text to these repository fields.
var scopes = []string{"name", "description", "topics", "readme"}

// BuildQuery returns the provider query for text and filters.
//
// Clauses are joined with '+' in a fixed order: the quoted text with its
// scope qualifiers, then forks, stars and language. Zero counts and an empty
// language are omitted. text is not validated; an empty string yields `""`.
func BuildQuery(text string, f Filters) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(text)
	b.WriteByte('"')
	for _, s := range scopes {
		b.WriteString("+in:")
		b.WriteString(s)
	}
	if f.Forks > 0 {
		b.WriteString("+forks:>=")
		b.WriteString(strconv.Itoa(f.Forks))
	}
	if f.Stars > 0 {
		b.WriteString("+stars:>=")
		b.WriteString(strconv.Itoa(f.Stars))
	}
	if f.Language != "" {
		b.WriteString("+language:")
		b.WriteString(f.Language)
	}
	return b.String()
}
