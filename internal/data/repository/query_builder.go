package repository

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// whereBuilder collects optional predicates with positional arguments.
// Clauses use '?' placeholders which are renumbered to $n as they are added.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (b *whereBuilder) add(clause string, args ...any) *whereBuilder {
	var sb strings.Builder
	next := 0
	for _, r := range clause {
		if r == '?' && next < len(args) {
			b.args = append(b.args, args[next])
			next++
			sb.WriteString("$" + strconv.Itoa(len(b.args)))
			continue
		}
		sb.WriteRune(r)
	}
	b.clauses = append(b.clauses, sb.String())
	return b
}

// String renders " WHERE a AND b", or nothing when no predicate was added
func (b *whereBuilder) String() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

func (b *whereBuilder) Args() []any {
	return b.args
}

// placeholder reserves the next positional argument, used for LIMIT/OFFSET
func (b *whereBuilder) placeholder(arg any) string {
	b.args = append(b.args, arg)
	return "$" + strconv.Itoa(len(b.args))
}

// BookFilter narrows the book listing. Zero values mean "no filter".
type BookFilter struct {
	Query      string
	CategoryID *uuid.UUID
}

func (f BookFilter) where() *whereBuilder {
	b := &whereBuilder{}

	if f.Query != "" {
		pattern := "%" + escapeLike(f.Query) + "%"
		b.add("(b.title ILIKE ? OR b.author ILIKE ?)", pattern, pattern)
	}
	if f.CategoryID != nil {
		b.add("b.category_id = ?", *f.CategoryID)
	}

	return b
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
