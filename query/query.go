// Package query provides a structured collection query with a canonical id.
//
// The cache never evaluates queries; it only needs a stable identity for
// them. Two queries built with the same path, filters, order-bys and limit
// have the same CanonicalID, whatever their object identity.
package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpLessThan           Operator = "<"
	OpLessThanOrEqual    Operator = "<="
	OpEqual              Operator = "=="
	OpNotEqual           Operator = "!="
	OpGreaterThan        Operator = ">"
	OpGreaterThanOrEqual Operator = ">="
	OpArrayContains      Operator = "array-contains"
	OpIn                 Operator = "in"
)

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns a string representation of the Direction.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Filter restricts results to documents whose Field compares to Value.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

func (f Filter) canonical() string {
	return f.Field + string(f.Op) + canonicalValue(f.Value)
}

// OrderBy sorts results by Field.
type OrderBy struct {
	Field     string
	Direction Direction
}

// Query is an immutable collection query.
// Builder methods return modified copies.
type Query struct {
	path     string
	filters  []Filter
	orderBys []OrderBy
	limit    int // 0 means no limit
}

// AtPath creates a query over the collection at path.
func AtPath(path string) Query {
	return Query{path: strings.Trim(path, "/")}
}

// Where returns a copy with an added filter.
func (q Query) Where(field string, op Operator, value any) Query {
	q.filters = append(slices.Clip(q.filters), Filter{Field: field, Op: op, Value: value})
	return q
}

// OrderBy returns a copy with an added sort order.
func (q Query) OrderBy(field string, dir Direction) Query {
	q.orderBys = append(slices.Clip(q.orderBys), OrderBy{Field: field, Direction: dir})
	return q
}

// Limit returns a copy limited to n results. n <= 0 removes the limit.
func (q Query) Limit(n int) Query {
	if n < 0 {
		n = 0
	}
	q.limit = n
	return q
}

// Path returns the collection path.
func (q Query) Path() string { return q.path }

// Filters returns a copy of the filters.
func (q Query) Filters() []Filter { return slices.Clone(q.filters) }

// OrderBys returns a copy of the sort orders.
func (q Query) OrderBys() []OrderBy { return slices.Clone(q.orderBys) }

// LimitValue returns the limit and whether one is set.
func (q Query) LimitValue() (int, bool) { return q.limit, q.limit > 0 }

// CanonicalID returns the stable identity of the query:
//
//	<path>|f:<field><op><value>...|ob:<field><dir>...[|l:<n>]
func (q Query) CanonicalID() string {
	var b strings.Builder
	b.WriteString(q.path)
	b.WriteString("|f:")
	for _, f := range q.filters {
		b.WriteString(f.canonical())
	}
	b.WriteString("|ob:")
	for _, o := range q.orderBys {
		b.WriteString(o.Field)
		b.WriteString(o.Direction.String())
	}
	if q.limit > 0 {
		b.WriteString("|l:")
		b.WriteString(strconv.Itoa(q.limit))
	}
	return b.String()
}

// Equal reports whether q and o have the same canonical identity.
func (q Query) Equal(o Query) bool {
	return q.CanonicalID() == o.CanonicalID()
}

// String returns a string representation of the Query.
func (q Query) String() string {
	return "Query(" + q.CanonicalID() + ")"
}

// canonicalValue renders v with a type tag so that 1 and "1" stay distinct.
func canonicalValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return "i" + strconv.FormatInt(int64(x), 10)
	case int64:
		return "i" + strconv.FormatInt(x, 10)
	case float64:
		return "d" + strconv.FormatFloat(x, 'g', -1, 64)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = canonicalValue(e)
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return fmt.Sprintf("%T(%v)", x, x)
	}
}
