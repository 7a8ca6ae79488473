package query

import (
	"cmp"
	"slices"
	"strings"
)

// Record exposes the fields a Resolved filter needs to evaluate one row in
// memory. Used by in-process stores (tests, seed tooling) that mirror the SQL
// semantics of SelectSQL/CountSQL.
type Record interface {
	RecordID() int64
	// FieldValue returns the textual value of a column; ok=false if unknown.
	FieldValue(column string) (string, bool)
}

// Apply filters, orders and paginates items exactly like SelectSQL/CountSQL.
func Apply[T Record](r *Resolved, items []T) Page[T] {
	matched := make([]T, 0, len(items))
	for _, it := range items {
		if r.matches(it) {
			matched = append(matched, it)
		}
	}

	slices.SortStableFunc(matched, func(a, b T) int {
		av, _ := a.FieldValue(r.SortColumn)
		bv, _ := b.FieldValue(r.SortColumn)
		c := strings.Compare(av, bv)
		if r.SortColumn == "id" {
			c = cmp.Compare(a.RecordID(), b.RecordID())
		}
		if r.Order == OrderDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.RecordID(), b.RecordID())
	})

	total := int64(len(matched))
	start := min(r.Offset, len(matched))
	end := min(start+r.Limit, len(matched))

	return NewPage(r, matched[start:end], total)
}

func (r *Resolved) matches(rec Record) bool {
	if r.Search != "" && len(r.schema.SearchColumns) > 0 {
		needle := strings.ToLower(r.Search)
		hit := false
		for _, col := range r.schema.SearchColumns {
			v, _ := rec.FieldValue(col)
			if strings.Contains(strings.ToLower(v), needle) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	for _, c := range r.Exact {
		v, _ := rec.FieldValue(c.Column)
		if v != c.Value {
			return false
		}
	}
	return true
}
