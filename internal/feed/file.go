package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shopdir/internal"
	"shopdir/internal/pipeline"
)

// FileSource reads a local .csv or .xlsx copy of the directory sheet.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + filepath.Base(s.path)
}

func (s *FileSource) Rows(ctx context.Context) ([]internal.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".xlsx":
		return pipeline.ParseXLSX(blob)
	case ".csv", ".txt":
		text := string(blob)
		if res := pipeline.DetectHTML(text); res.IsHTML {
			return nil, ErrHTMLPayload
		}
		return pipeline.ParseCSV(text), nil
	default:
		return nil, fmt.Errorf("unsupported feed file type: %s", s.path)
	}
}
