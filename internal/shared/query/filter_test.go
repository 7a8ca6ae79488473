package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/shared/apperror"
)

func testSchema() *Schema {
	return &Schema{
		Table:   "genres",
		Columns: []string{"id", "name", "slug"},
		Sortable: map[string]string{
			"id":         "id",
			"name":       "name",
			"created_at": "created_at",
			"createdAt":  "created_at",
		},
		DefaultSort:   "created_at",
		SearchColumns: []string{"name", "description"},
		ExactColumns:  map[string]string{"slug": "slug"},
	}
}

func TestResolve_Defaults(t *testing.T) {
	r, err := testSchema().Resolve(Filter{})
	require.NoError(t, err)

	assert.Equal(t, "created_at", r.SortColumn)
	assert.Equal(t, OrderDesc, r.Order)
	assert.Equal(t, DefaultLimit, r.Limit)
	assert.Equal(t, 0, r.Offset)
	assert.Empty(t, r.Exact)
}

func TestResolve_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
	}{
		{"unknown sort field", Filter{SortBy: "password_hash"}},
		{"bad order", Filter{Order: "sideways"}},
		{"negative limit", Filter{Limit: -1}},
		{"limit too large", Filter{Limit: MaxLimit + 1}},
		{"negative offset", Filter{Offset: -5}},
		{"unknown exact field", Filter{Exact: map[string]string{"owner": "x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testSchema().Resolve(tt.filter)
			require.Error(t, err)
			assert.True(t, apperror.IsBadRequest(err))
			assert.ErrorIs(t, err, ErrInvalidFilter)
		})
	}
}

func TestResolve_CamelCaseAliasAndUppercaseOrder(t *testing.T) {
	r, err := testSchema().Resolve(Filter{SortBy: "createdAt", Order: "ASC"})
	require.NoError(t, err)

	assert.Equal(t, "created_at", r.SortColumn)
	assert.Equal(t, OrderAsc, r.Order)
}

func TestSelectSQL_NoFilters(t *testing.T) {
	r, err := testSchema().Resolve(Filter{})
	require.NoError(t, err)

	sql, args := r.SelectSQL()
	assert.Equal(t, "SELECT id, name, slug FROM genres ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2", sql)
	assert.Equal(t, []any{10, 0}, args)

	count, countArgs := r.CountSQL()
	assert.Equal(t, "SELECT COUNT(*) FROM genres", count)
	assert.Empty(t, countArgs)
}

func TestSelectSQL_SearchAndExactAreAndCombined(t *testing.T) {
	r, err := testSchema().Resolve(Filter{
		Search: "  fi_ction%  ",
		Exact:  map[string]string{"slug": "science-fiction"},
		SortBy: "name",
		Order:  "asc",
		Limit:  25,
		Offset: 50,
	})
	require.NoError(t, err)

	sql, args := r.SelectSQL()
	assert.Equal(t,
		"SELECT id, name, slug FROM genres WHERE (name ILIKE $1 OR description ILIKE $1) AND slug = $2 ORDER BY name ASC, id ASC LIMIT $3 OFFSET $4",
		sql)
	assert.Equal(t, []any{`%fi\_ction\%%`, "science-fiction", 25, 50}, args)

	count, countArgs := r.CountSQL()
	assert.Equal(t, "SELECT COUNT(*) FROM genres WHERE (name ILIKE $1 OR description ILIKE $1) AND slug = $2", count)
	assert.Equal(t, []any{`%fi\_ction\%%`, "science-fiction"}, countArgs)
}

func TestSelectSQL_SortByIDHasNoTieBreak(t *testing.T) {
	r, err := testSchema().Resolve(Filter{SortBy: "id"})
	require.NoError(t, err)

	sql, _ := r.SelectSQL()
	assert.Contains(t, sql, "ORDER BY id DESC LIMIT")
}

func TestResolve_BlankExactValuesAreIgnored(t *testing.T) {
	r, err := testSchema().Resolve(Filter{Exact: map[string]string{"slug": "  "}})
	require.NoError(t, err)

	assert.Empty(t, r.Exact)
	sql, _ := r.CountSQL()
	assert.NotContains(t, sql, "WHERE")
}
