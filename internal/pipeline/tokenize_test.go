package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"shopdir/internal"
)

func TestParseCSVRowCount(t *testing.T) {
	text := "Name,Phone\nA,1\n\nB,2\r\n   \nC,3\n"
	rows := ParseCSV(text)
	if len(rows) != 3 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[2]["name"] != "C" || rows[2]["phone"] != "3" {
		t.Fatalf("row=%v", rows[2])
	}
}

func TestParseCSVQuotedComma(t *testing.T) {
	rows := ParseCSV("name,address\nShop,\"Taungoo, Myanmar\"\n")
	if len(rows) != 1 {
		t.Fatalf("len=%d", len(rows))
	}
	if got := rows[0]["address"]; got != "Taungoo, Myanmar" {
		t.Fatalf("address=%q", got)
	}
}

func TestParseCSVEscapedQuote(t *testing.T) {
	rows := ParseCSV("name,description\nShop,\"Say \"\"hi\"\"!\"\n")
	if len(rows) != 1 {
		t.Fatalf("len=%d", len(rows))
	}
	if got := rows[0]["description"]; got != `Say "hi"!` {
		t.Fatalf("description=%q", got)
	}
}

func TestParseCSVHeaderNormalization(t *testing.T) {
	rows := ParseCSV("\"Business Name\", Image URL ,\"Google Map Link\"\nShop,img.jpg,https://maps\n")
	want := []internal.RawRow{{"businessname": "Shop", "imageurl": "img.jpg", "googlemaplink": "https://maps"}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCSVEmptyInputs(t *testing.T) {
	for _, text := range []string{"", "name,phone", "name,phone\n", "name,phone\r\n\r\n"} {
		rows := ParseCSV(text)
		if rows == nil || len(rows) != 0 {
			t.Fatalf("ParseCSV(%q) = %v, want empty", text, rows)
		}
	}
}

func TestParseCSVShortAndLongRows(t *testing.T) {
	rows := ParseCSV("name,phone,address\nOnly Name\nA,1,x,extra\n")
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0]["phone"] != "" || rows[0]["address"] != "" {
		t.Fatalf("missing cells not empty: %v", rows[0])
	}
	if len(rows[1]) != 3 {
		t.Fatalf("extra cell kept: %v", rows[1])
	}
}

func TestParseCSVDuplicateHeaderLastWins(t *testing.T) {
	rows := ParseCSV("name,Name\nfirst,second\n")
	if rows[0]["name"] != "second" {
		t.Fatalf("name=%q", rows[0]["name"])
	}
}

func TestParseCSVUnbalancedQuote(t *testing.T) {
	rows := ParseCSV("name,address\n\"Broken, shop,street\n")
	if len(rows) != 1 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0]["name"] != `"Broken, shop,street` {
		t.Fatalf("name=%q", rows[0]["name"])
	}
}

func TestRowsFromGrid(t *testing.T) {
	rows := RowsFromGrid([][]string{
		{"Shop Name", "Tel"},
		{" Shop ", "09"},
		{"", ""},
		{"Other"},
	})
	want := []internal.RawRow{
		{"shopname": "Shop", "tel": "09"},
		{"shopname": "Other", "tel": ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}
