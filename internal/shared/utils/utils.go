package utils

import (
	"strconv"
	"strings"
)

// ParseID parse path param thành positive int64 id
// Returns: (id, true) nếu hợp lệ, (0, false) nếu không
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Deref trả về "" nếu pointer nil
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
