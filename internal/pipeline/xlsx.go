package pipeline

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"shopdir/internal"
)

// ParseXLSX reads the first non-empty sheet of a workbook whose first row is
// the header.
func ParseXLSX(content []byte) ([]internal.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		grid, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(grid) == 0 {
			continue
		}
		return RowsFromGrid(grid), nil
	}
	return []internal.RawRow{}, nil
}
