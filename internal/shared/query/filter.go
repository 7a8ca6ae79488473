// Package query turns list requests (search, exact-match fields, sort, limit,
// offset) into bounded, ordered Postgres queries plus a matching count query.
//
// Each resource declares a Schema once at startup; Resolve validates a Filter
// against it and fails fast on anything the schema does not know about.
package query

import (
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/utils"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultOrder = OrderDesc
)

// ErrInvalidFilter is returned for unknown sort fields, unknown exact-match
// fields, bad order values, or out-of-range limit/offset.
var ErrInvalidFilter = apperror.BadRequest("INVALID_FILTER", "Invalid filter parameters")

// Filter is the raw list request as it arrives from the transport layer.
// Zero values mean "use the default".
type Filter struct {
	Search string
	SortBy string
	Order  string
	Limit  int
	Offset int
	Exact  map[string]string // field name → value, AND-combined
}

// Schema describes one listable table.
type Schema struct {
	Table         string
	Columns       []string          // SELECT list, in scan order
	Sortable      map[string]string // request field → column
	DefaultSort   string            // request field used when SortBy is empty
	SearchColumns []string          // ILIKE targets, OR-combined
	ExactColumns  map[string]string // request field → column
}

// Condition is one exact-match predicate after resolution.
type Condition struct {
	Field  string
	Column string
	Value  string
}

// Resolved is a validated Filter bound to its Schema.
type Resolved struct {
	schema     *Schema
	Search     string
	Exact      []Condition
	SortField  string
	SortColumn string
	Order      Order
	Limit      int
	Offset     int
}

// Page is a bounded, ordered subset of a filtered result set plus the
// total number of matches ignoring limit/offset.
type Page[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

// NewPage binds items and total to the window r asked for. A nil slice
// becomes empty so it encodes as [].
func NewPage[T any](r *Resolved, items []T, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Limit: r.Limit, Offset: r.Offset}
}

// Resolve applies defaults and validates f against the schema.
func (s *Schema) Resolve(f Filter) (*Resolved, error) {
	sortField := strings.TrimSpace(f.SortBy)
	if sortField == "" {
		sortField = s.DefaultSort
	}

	order := Order(strings.ToLower(strings.TrimSpace(f.Order)))
	if order == "" {
		order = DefaultOrder
	}

	exactKeys := make([]string, 0, len(f.Exact))
	for k, v := range f.Exact {
		if strings.TrimSpace(v) != "" {
			exactKeys = append(exactKeys, k)
		}
	}
	sort.Strings(exactKeys)

	err := validation.Errors{
		"sort_by": validation.Validate(sortField, validation.In(keysOf(s.Sortable)...).Error("unknown sort field")),
		"order":   validation.Validate(string(order), validation.In(string(OrderAsc), string(OrderDesc)).Error("must be asc or desc")),
		"limit":   validation.Validate(f.Limit, validation.Min(0), validation.Max(MaxLimit)),
		"offset":  validation.Validate(f.Offset, validation.Min(0)),
		"filter":  validation.Validate(exactKeys, validation.Each(validation.In(keysOf(s.ExactColumns)...).Error("unknown filter field"))),
	}.Filter()
	if err != nil {
		return nil, ErrInvalidFilter.WithMessage("invalid filter: %v", err)
	}

	limit := f.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	r := &Resolved{
		schema:     s,
		Search:     strings.TrimSpace(f.Search),
		SortField:  sortField,
		SortColumn: s.Sortable[sortField],
		Order:      order,
		Limit:      limit,
		Offset:     f.Offset,
	}
	for _, k := range exactKeys {
		r.Exact = append(r.Exact, Condition{Field: k, Column: s.ExactColumns[k], Value: strings.TrimSpace(f.Exact[k])})
	}
	return r, nil
}

// where builds the shared WHERE clause; placeholders start at $1.
func (r *Resolved) where() (string, []any) {
	var clauses []string
	var args []any

	if r.Search != "" && len(r.schema.SearchColumns) > 0 {
		args = append(args, "%"+utils.EscapeLike(r.Search)+"%")
		ors := make([]string, len(r.schema.SearchColumns))
		for i, col := range r.schema.SearchColumns {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", col, len(args))
		}
		clauses = append(clauses, "("+utils.JoinWithOr(ors)+")")
	}

	for _, c := range r.Exact {
		args = append(args, c.Value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", c.Column, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + utils.JoinWithAnd(clauses), args
}

// SelectSQL returns the page query. Ties on the sort column are broken by id
// ascending so pagination is reproducible.
func (r *Resolved) SelectSQL() (string, []any) {
	where, args := r.where()

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s%s", strings.Join(r.schema.Columns, ", "), r.schema.Table, where)
	fmt.Fprintf(&b, " ORDER BY %s %s", r.SortColumn, strings.ToUpper(string(r.Order)))
	if r.SortColumn != "id" {
		b.WriteString(", id ASC")
	}
	args = append(args, r.Limit, r.Offset)
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return b.String(), args
}

// CountSQL returns the total-matches query for the same filter.
func (r *Resolved) CountSQL() (string, []any) {
	where, args := r.where()
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", r.schema.Table, where), args
}

func keysOf(m map[string]string) []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
