package catalog

import (
	"strings"
)

// columns are the fixed item fields a query may name directly.
var columns = map[string]bool{
	"artist":        true,
	"artist_sort":   true,
	"composer_sort": true,
	"album":         true,
	"title":         true,
	"work":          true,
	"genre":         true,
}

// bareColumns are searched by terms without a field prefix.
var bareColumns = []string{"artist", "album", "title"}

// Term is one query condition: a case-insensitive substring match on Field,
// or on the bare columns when Field is empty.
type Term struct {
	Field string
	Value string
}

// Query is a conjunction of terms. The zero Query matches every item.
type Query struct {
	Terms []Term
}

// ParseQuery turns command line arguments such as `composer_sort:Bach
// work:Mass Kyrie` into a Query.
func ParseQuery(args []string) Query {
	var q Query
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		field, value, ok := strings.Cut(arg, ":")
		if ok && field != "" && !strings.ContainsAny(field, " \t") {
			q.Terms = append(q.Terms, Term{Field: strings.ToLower(field), Value: value})
			continue
		}
		q.Terms = append(q.Terms, Term{Value: arg})
	}
	return q
}

func (q Query) String() string {
	parts := make([]string, 0, len(q.Terms))
	for _, term := range q.Terms {
		if term.Field == "" {
			parts = append(parts, term.Value)
			continue
		}
		parts = append(parts, term.Field+":"+term.Value)
	}
	return strings.Join(parts, " ")
}

// where renders the query as a SQL condition over the items table.
func (q Query) where() (string, []any) {
	if len(q.Terms) == 0 {
		return "1=1", nil
	}
	clauses := make([]string, 0, len(q.Terms))
	var args []any
	for _, term := range q.Terms {
		pattern := "%" + escapeLike(term.Value) + "%"
		switch {
		case term.Field == "":
			ors := make([]string, 0, len(bareColumns))
			for _, col := range bareColumns {
				ors = append(ors, col+` LIKE ? ESCAPE '\'`)
				args = append(args, pattern)
			}
			clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
		case columns[term.Field]:
			clauses = append(clauses, term.Field+` LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		default:
			clauses = append(clauses, `EXISTS (SELECT 1 FROM item_attributes a WHERE a.entity_id = items.id AND a.key = ? AND a.value LIKE ? ESCAPE '\')`)
			args = append(args, term.Field, pattern)
		}
	}
	return strings.Join(clauses, " AND "), args
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
