package storage

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopdir/internal"
)

var mirrorColumns = []string{
	"position", "id", "name", "category", "address", "phone", "viber", "description",
	"image_url", "google_map_link", "rating", "reviews", "price", "detail",
}

// Mirror publishes the current directory snapshot to Postgres for other
// services to read.
type Mirror struct {
	DB *pgxpool.Pool
}

func OpenMirror(ctx context.Context, databaseURL string) (*Mirror, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	m := &Mirror{DB: pool}
	if err := m.init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return m, nil
}

func (m *Mirror) Close() {
	m.DB.Close()
}

func (m *Mirror) init(ctx context.Context) error {
	_, err := m.DB.Exec(ctx, `
CREATE TABLE IF NOT EXISTS directory_businesses (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  viber TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  google_map_link TEXT NOT NULL DEFAULT '',
  rating DOUBLE PRECISION NOT NULL,
  reviews INTEGER NOT NULL,
  price TEXT NOT NULL DEFAULT '',
  detail TEXT NOT NULL DEFAULT ''
)`)
	return err
}

// ReplaceBusinesses swaps the mirrored snapshot in one transaction.
func (m *Mirror) ReplaceBusinesses(ctx context.Context, businesses []internal.Business) error {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM directory_businesses`); err != nil {
		return err
	}

	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"directory_businesses"}, mirrorColumns, pgx.CopyFromRows(mirrorRows(businesses))); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func mirrorRows(businesses []internal.Business) [][]any {
	rows := make([][]any, 0, len(businesses))
	for i, b := range businesses {
		rows = append(rows, []any{
			i, text(b.ID), text(b.Name), text(string(b.Category)), text(b.Address), text(b.Phone), text(b.Viber),
			text(b.Description), text(b.ImageURL), text(b.MapLink), b.Rating, b.Reviews, text(b.Price), text(b.Detail),
		})
	}
	return rows
}

// text drops byte sequences Postgres rejects in TEXT columns.
func text(s string) string {
	return strings.ToValidUTF8(s, "")
}
