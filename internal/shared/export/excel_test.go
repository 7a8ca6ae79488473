package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type item struct {
	ID      int64
	Name    string
	Note    *string
	Created time.Time
}

func sheet(rows ...item) Sheet[item] {
	return Sheet[item]{
		Name: "Items",
		Columns: []Column[item]{
			{Header: "ID", Value: func(i item) any { return i.ID }},
			{Header: "Name", Value: func(i item) any { return i.Name }},
			{Header: "Note", Value: func(i item) any { return OptString(i.Note) }},
			{Header: "Created At", Value: func(i item) any { return i.Created }},
		},
		Rows: rows,
	}
}

func TestBytes_RoundTrip(t *testing.T) {
	note := "first"
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	raw, err := Bytes(sheet(
		item{ID: 1, Name: "Fantasy", Note: &note, Created: created},
		item{ID: 2, Name: "Horror", Created: created},
	))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Items")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "Name", "Note", "Created At"}, rows[0])
	assert.Equal(t, []string{"1", "Fantasy", "first", "2024-05-06 07:08:09"}, rows[1])
	assert.Equal(t, []string{"2", "Horror", "", "2024-05-06 07:08:09"}, rows[2])
}

func TestBuild_EmptyRowsStillHasHeader(t *testing.T) {
	f, err := Build(sheet())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Items")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ID", rows[0][0])
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 59, 1, 0, time.UTC)
	assert.Equal(t, "genres_20241231_235901.xlsx", Filename("genres", at))
}
