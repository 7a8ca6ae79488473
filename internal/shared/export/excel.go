// Package export renders list results as .xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout      = "2006-01-02 15:04:05"
)

// Column là một cột trong sheet: header + hàm lấy giá trị từ row
type Column[T any] struct {
	Header string
	Value  func(T) any
}

// Sheet mô tả một sheet cần render
type Sheet[T any] struct {
	Name    string
	Columns []Column[T]
	Rows    []T
}

// Build renders the sheet into a new workbook. Row 1 is a bold header,
// data starts at row 2. nil values leave the cell empty; time.Time values
// are written as "YYYY-MM-DD HH:MM:SS" UTC.
func Build[T any](s Sheet[T]) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", s.Name); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for colIdx, col := range s.Columns {
		cell, err := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(s.Name, cell, col.Header); err != nil {
			f.Close()
			return nil, err
		}
	}

	if len(s.Columns) > 0 {
		headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			last, _ := excelize.CoordinatesToCellName(len(s.Columns), 1)
			_ = f.SetCellStyle(s.Name, "A1", last, headerStyle)
		}
	}

	for i, row := range s.Rows {
		rowNum := i + 2
		for colIdx, col := range s.Columns {
			v := col.Value(row)
			if v == nil {
				continue
			}
			if t, ok := v.(time.Time); ok {
				v = t.UTC().Format(timeLayout)
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err := f.SetCellValue(s.Name, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("write %s: %w", cell, err)
			}
		}
	}

	return f, nil
}

// Bytes is Build followed by serialisation
func Bytes[T any](s Sheet[T]) ([]byte, error) {
	f, err := Build(s)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds "<prefix>_<yyyymmdd_hhmmss>.xlsx"
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.UTC().Format("20060102_150405"))
}

// OptString trả về nil cho pointer nil để cell để trống
func OptString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
