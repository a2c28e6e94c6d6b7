package feed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"shopdir/internal"
	"shopdir/internal/config"
	"shopdir/internal/pipeline"
)

// SheetsSource reads the directory through the Sheets API, which also works
// for sheets that are not published to the web.
type SheetsSource struct {
	svc     *sheets.Service
	sheetID string
	rng     string
}

func NewSheetsSource(ctx context.Context, cfg config.Config) (*SheetsSource, error) {
	if err := cfg.Require("FEED_SHEET_ID", cfg.FeedSheetID); err != nil {
		return nil, err
	}

	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(cfg.GoogleCredentialsFile) != "":
		blob, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, err
		}
		creds, err := google.CredentialsFromJSON(ctx, blob, sheets.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("google credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	case strings.TrimSpace(cfg.GoogleAPIKey) != "":
		opts = append(opts, option.WithAPIKey(cfg.GoogleAPIKey))
	default:
		return nil, errors.New("sheets source needs GOOGLE_API_KEY or GOOGLE_CREDENTIALS_FILE")
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &SheetsSource{svc: svc, sheetID: cfg.FeedSheetID, rng: cfg.FeedSheetRange}, nil
}

func (s *SheetsSource) Name() string {
	return "sheets_api"
}

func (s *SheetsSource) Rows(ctx context.Context) ([]internal.RawRow, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.sheetID, s.rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return pipeline.RowsFromGrid(gridFromValues(resp.Values)), nil
}

func gridFromValues(values [][]interface{}) [][]string {
	grid := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		grid = append(grid, cells)
	}
	return grid
}
