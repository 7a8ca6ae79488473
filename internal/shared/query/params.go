package query

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// FromRequest reads search, sort_by (alias sortBy), order, limit, offset and
// the given exact-match fields from the query string. Only syntax is checked
// here; ranges and allowed names are checked by Schema.Resolve.
func FromRequest(c *gin.Context, exactFields ...string) (Filter, error) {
	f := Filter{
		Search: c.Query("search"),
		SortBy: firstNonEmpty(c.Query("sort_by"), c.Query("sortBy")),
		Order:  c.Query("order"),
	}

	var err error
	if f.Limit, err = intParam(c, "limit"); err != nil {
		return Filter{}, err
	}
	if f.Offset, err = intParam(c, "offset"); err != nil {
		return Filter{}, err
	}

	for _, field := range exactFields {
		if v, ok := c.GetQuery(field); ok {
			if f.Exact == nil {
				f.Exact = make(map[string]string, len(exactFields))
			}
			f.Exact[field] = v
		}
	}
	return f, nil
}

func intParam(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidFilter.WithMessage("invalid filter: %s must be an integer", name)
	}
	return n, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
