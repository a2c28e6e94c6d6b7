package pipeline

import (
	"strings"

	"shopdir/internal"
	"shopdir/internal/util"
)

// ParseCSV turns a spreadsheet CSV export into rows keyed by normalized
// header. The first line is the header; blank lines are skipped. Quoted
// fields may contain commas and "" escapes but not line breaks.
func ParseCSV(text string) []internal.RawRow {
	out := []internal.RawRow{}

	lines := splitLines(text)
	if len(lines) < 2 {
		return out
	}

	headers := parseHeaderLine(lines[0])
	if len(headers) == 0 {
		return out
	}

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitQuoted(line)
		row := make(internal.RawRow, len(headers))
		for i, h := range headers {
			row[h] = pickValue(values, i)
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}

	return out
}

// RowsFromGrid applies the same header rules to an already split grid, as
// returned by xlsx readers and the Sheets API. Row 0 is the header.
func RowsFromGrid(grid [][]string) []internal.RawRow {
	out := []internal.RawRow{}
	if len(grid) < 2 {
		return out
	}

	headers := make([]string, 0, len(grid[0]))
	for _, h := range grid[0] {
		headers = append(headers, util.NormalizeHeader(h))
	}

	for _, cells := range grid[1:] {
		if isBlankRow(cells) {
			continue
		}
		row := make(internal.RawRow, len(headers))
		for i, h := range headers {
			row[h] = strings.TrimSpace(pickValue(cells, i))
		}
		if len(row) > 0 {
			out = append(out, row)
		}
	}
	return out
}

func parseHeaderLine(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, util.NormalizeHeader(p))
	}
	return out
}

// splitQuoted scans once, treating commas inside an open quote pair as data.
// Unbalanced quotes degrade to keeping the rest of the line in one field.
func splitQuoted(line string) []string {
	var (
		values  []string
		current strings.Builder
		inQuote bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			current.WriteRune(r)
		case r == ',' && !inQuote:
			values = append(values, cleanValue(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	values = append(values, cleanValue(current.String()))
	return values
}

func cleanValue(raw string) string {
	v := strings.TrimSpace(raw)
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
	}
	return strings.ReplaceAll(v, `""`, `"`)
}

func pickValue(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
