package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopdir/internal"
	"shopdir/internal/pipeline"
)

var (
	ErrHTMLPayload = errors.New("feed returned an html page instead of csv")
	ErrEmptyFeed   = errors.New("feed contained no data rows")
)

// Source yields raw rows from one place the directory can be read from.
type Source interface {
	Name() string
	Rows(ctx context.Context) ([]internal.RawRow, error)
}

// CSVExportSource reads the public CSV export of a spreadsheet with a single
// GET per call.
type CSVExportSource struct {
	url        string
	httpClient *http.Client
}

func NewCSVExportSource(exportURL string, timeout time.Duration) *CSVExportSource {
	return &CSVExportSource{
		url:        exportURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *CSVExportSource) Name() string {
	return "csv_export"
}

func (s *CSVExportSource) Rows(ctx context.Context) ([]internal.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed status %d", resp.StatusCode)
	}

	text := string(body)
	if res := pipeline.DetectHTML(text); res.IsHTML {
		if res.Title != "" {
			return nil, fmt.Errorf("%w (%s)", ErrHTMLPayload, res.Title)
		}
		return nil, ErrHTMLPayload
	}

	return pipeline.ParseCSV(text), nil
}
