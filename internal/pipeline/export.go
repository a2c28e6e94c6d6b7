package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"shopdir/internal"
)

// directoryHeaders double as feed aliases, so an exported sheet can be
// imported again unchanged.
var directoryHeaders = []string{
	"id", "name", "category", "address", "phone", "viber", "description",
	"imageUrl", "googleMapLink", "rating", "reviews", "price", "detail",
}

func ExportBusinessesToXLSX(businesses []internal.Business, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range directoryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, b := range businesses {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, b.ID)
		set(2, b.Name)
		set(3, string(b.Category))
		set(4, b.Address)
		set(5, b.Phone)
		set(6, b.Viber)
		set(7, b.Description)
		set(8, b.ImageURL)
		set(9, b.MapLink)
		set(10, b.Rating)
		set(11, b.Reviews)
		set(12, b.Price)
		set(13, b.Detail)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
