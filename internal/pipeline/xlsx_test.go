package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"shopdir/internal"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	blob := mkXLSX([][]any{
		{"Business Name", "Category", "Rating"},
		{"Khit Thit Mobile", "Mobile Phone", 4.8},
		{"Baby World", "Baby Store", 4.9},
	})
	rows, err := ParseXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[1]["businessname"] != "Baby World" || rows[1]["rating"] != "4.9" {
		t.Fatalf("row=%v", rows[1])
	}
}

func TestExportBusinessesRoundTrip(t *testing.T) {
	businesses := []internal.Business{
		{ID: "1", Name: "Khit Thit Mobile", Category: internal.CategoryMobile, Rating: 4.8, Reviews: 124, MapLink: "#", Price: "Starting at 200,000 Ks"},
		{ID: "2", Name: "Yummy Spicy Noodle", Category: internal.CategoryRestaurant, Rating: 4.3, Reviews: 210, MapLink: "#"},
	}
	out := filepath.Join(t.TempDir(), "nested", "directory.xlsx")
	if err := ExportBusinessesToXLSX(businesses, out); err != nil {
		t.Fatal(err)
	}

	blob, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := ParseXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	back := NewNormalizer(NormalizerOptions{DefaultRating: 4.5, DefaultReviews: 10}).NormalizeRows(rows)
	if len(back) != 2 {
		t.Fatalf("len=%d", len(back))
	}
	if back[0].Name != "Khit Thit Mobile" || back[0].Category != internal.CategoryMobile || back[0].Reviews != 124 {
		t.Fatalf("first=%+v", back[0])
	}
	if back[0].Price != "Starting at 200,000 Ks" || back[1].Price != "" {
		t.Fatalf("prices=%q %q", back[0].Price, back[1].Price)
	}
}
