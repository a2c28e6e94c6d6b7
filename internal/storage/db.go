package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shopdir/internal"
)

var ErrVoucherExists = errors.New("voucher already recorded")

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS businesses (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  viber TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  imageUrl TEXT NOT NULL DEFAULT '',
  googleMapLink TEXT NOT NULL DEFAULT '',
  rating REAL NOT NULL,
  reviews INTEGER NOT NULL,
  price TEXT NOT NULL DEFAULT '',
  detail TEXT NOT NULL DEFAULT '',
  loadedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_businesses_id ON businesses(id);
CREATE INDEX IF NOT EXISTS idx_businesses_category ON businesses(category);

CREATE TABLE IF NOT EXISTS feed_loads (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  source TEXT NOT NULL,
  outcome TEXT NOT NULL,
  reason TEXT NOT NULL DEFAULT '',
  records INTEGER NOT NULL,
  durationMs INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS orders (
  voucherId TEXT PRIMARY KEY,
  customerName TEXT NOT NULL,
  customerPhone TEXT NOT NULL,
  customerAddress TEXT NOT NULL,
  grandTotal INTEGER NOT NULL,
  issuedAt TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS order_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  voucherId TEXT NOT NULL,
  lineNo INTEGER NOT NULL,
  businessId TEXT NOT NULL,
  name TEXT NOT NULL,
  priceText TEXT NOT NULL DEFAULT '',
  unitPrice INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  amount INTEGER NOT NULL,
  UNIQUE(voucherId, lineNo),
  FOREIGN KEY(voucherId) REFERENCES orders(voucherId)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceBusinesses supersedes the stored directory with a new load.
func (d *DB) ReplaceBusinesses(businesses []internal.Business) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM businesses`); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
INSERT INTO businesses (
  position, id, name, category, address, phone, viber, description,
  imageUrl, googleMapLink, rating, reviews, price, detail, loadedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range businesses {
		if _, err := stmt.Exec(
			i, b.ID, b.Name, string(b.Category), b.Address, b.Phone, b.Viber, b.Description,
			b.ImageURL, b.MapLink, b.Rating, b.Reviews, b.Price, b.Detail,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListBusinesses() ([]internal.Business, error) {
	rows, err := d.conn.Query(`
SELECT id, name, category, address, phone, viber, description,
       imageUrl, googleMapLink, rating, reviews, price, detail
FROM businesses ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []internal.Business{}
	for rows.Next() {
		var b internal.Business
		var category string
		if err := rows.Scan(
			&b.ID, &b.Name, &category, &b.Address, &b.Phone, &b.Viber, &b.Description,
			&b.ImageURL, &b.MapLink, &b.Rating, &b.Reviews, &b.Price, &b.Detail,
		); err != nil {
			return nil, err
		}
		b.Category = internal.Category(category)
		out = append(out, b)
	}

	return out, rows.Err()
}

func (d *DB) InsertFeedLoad(load internal.FeedLoad) error {
	_, err := d.conn.Exec(`
INSERT INTO feed_loads (traceId, source, outcome, reason, records, durationMs)
VALUES (?, ?, ?, ?, ?, ?)
`, load.TraceID, load.Source, string(load.Outcome), load.Reason, load.Records, load.DurationMs)
	return err
}

func (d *DB) ListFeedLoads(limit int) ([]internal.FeedLoad, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
SELECT id, traceId, source, outcome, reason, records, durationMs, createdAt
FROM feed_loads ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.FeedLoad
	for rows.Next() {
		var row internal.FeedLoad
		var outcome string
		if err := rows.Scan(&row.ID, &row.TraceID, &row.Source, &outcome, &row.Reason, &row.Records, &row.DurationMs, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Outcome = internal.FeedOutcome(outcome)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) InsertOrder(r internal.Receipt) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow(`SELECT 1 FROM orders WHERE voucherId = ?`, r.VoucherID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("%w: %s", ErrVoucherExists, r.VoucherID)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if _, err := tx.Exec(`
INSERT INTO orders (voucherId, customerName, customerPhone, customerAddress, grandTotal, issuedAt)
VALUES (?, ?, ?, ?, ?, ?)
`, r.VoucherID, r.Customer.Name, r.Customer.Phone, r.Customer.Address, r.GrandTotal, r.IssuedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, line := range r.Lines {
		if _, err := tx.Exec(`
INSERT INTO order_items (voucherId, lineNo, businessId, name, priceText, unitPrice, quantity, amount)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, r.VoucherID, i+1, line.BusinessID, line.Name, line.PriceText, line.UnitPrice, line.Quantity, line.Amount); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) GetOrder(voucherID string) (*internal.Receipt, error) {
	var r internal.Receipt
	var issuedAt string
	err := d.conn.QueryRow(`
SELECT voucherId, customerName, customerPhone, customerAddress, grandTotal, issuedAt
FROM orders WHERE voucherId = ?
`, strings.TrimSpace(voucherID)).Scan(&r.VoucherID, &r.Customer.Name, &r.Customer.Phone, &r.Customer.Address, &r.GrandTotal, &issuedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, issuedAt); err == nil {
		r.IssuedAt = t
	}

	rows, err := d.conn.Query(`
SELECT businessId, name, priceText, unitPrice, quantity, amount
FROM order_items WHERE voucherId = ? ORDER BY lineNo ASC
`, r.VoucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var line internal.ReceiptLine
		if err := rows.Scan(&line.BusinessID, &line.Name, &line.PriceText, &line.UnitPrice, &line.Quantity, &line.Amount); err != nil {
			return nil, err
		}
		r.Lines = append(r.Lines, line)
	}
	return &r, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
