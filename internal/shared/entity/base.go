// Package entity holds the fields every stored record shares.
package entity

import (
	"strconv"
	"time"
)

// sortableTime is fixed-width so lexical order equals chronological order
const sortableTime = "2006-01-02T15:04:05.000000000Z"

// Base is embedded by value in every entity: id and timestamps are assigned
// by storage, never by callers.
type Base struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b Base) RecordID() int64 { return b.ID }

// BaseField answers query.Record lookups for the shared columns
func (b Base) BaseField(column string) (string, bool) {
	switch column {
	case "id":
		return strconv.FormatInt(b.ID, 10), true
	case "created_at":
		return b.CreatedAt.UTC().Format(sortableTime), true
	case "updated_at":
		return b.UpdatedAt.UTC().Format(sortableTime), true
	}
	return "", false
}
