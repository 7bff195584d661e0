package repository

import (
	"strings"

	"github.com/okian/foodie/internal/domain/model"
)

// clause is one SQL predicate with its bind arguments.
type clause struct {
	sql  string
	args []any
}

// Spellings a stored flag may take once cast to lower-case text.
var (
	trueSpellings  = []any{"true", "1"}
	falseSpellings = []any{"false", "0"}
)

// flagClause builds the predicate for one flag column. column must be a
// trusted identifier; it is interpolated into the statement.
//
// A parsed value matches both INTEGER and TEXT encodings. A passthrough
// value is compared as text, and an absent one binds NULL, which never
// compares equal.
func flagClause(column string, p model.FlagParam) clause {
	switch {
	case p.Valid && p.Value:
		return clause{sql: "LOWER(CAST(" + column + " AS TEXT)) IN (?, ?)", args: trueSpellings}
	case p.Valid:
		return clause{sql: "LOWER(CAST(" + column + " AS TEXT)) IN (?, ?)", args: falseSpellings}
	case !p.Present:
		return clause{sql: column + " = ?", args: []any{nil}}
	default:
		return clause{sql: "CAST(" + column + " AS TEXT) = ?", args: []any{p.Raw}}
	}
}

// and joins clauses into a single WHERE body.
func and(cs ...clause) (string, []any) {
	parts := make([]string, 0, len(cs))
	var args []any
	for _, c := range cs {
		parts = append(parts, c.sql)
		args = append(args, c.args...)
	}
	return strings.Join(parts, " AND "), args
}
