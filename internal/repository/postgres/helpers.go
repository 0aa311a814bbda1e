package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes the ILIKE wildcards in user input.
func escapeLike(s string) string { return likeEscaper.Replace(s) }
