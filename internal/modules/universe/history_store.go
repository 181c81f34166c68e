package universe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog"

	"github.com/quangtran/advisor/internal/domain"
)

// DefaultLookbackBars is roughly one trading year of daily bars
const DefaultLookbackBars = 250

const dateLayout = "2006-01-02"

// HistoryStore provides access to locally cached daily price history.
// It implements the fetch contract the scanner and the HTTP surface consume.
type HistoryStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewHistoryStore opens (creating if needed) the history database
func NewHistoryStore(path string, log zerolog.Logger) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS daily_prices (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL NOT NULL,
			high   REAL NOT NULL,
			low    REAL NOT NULL,
			close  REAL NOT NULL,
			volume INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (symbol, date)
		)
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create daily_prices table: %w", err)
	}

	return &HistoryStore{
		db:  db,
		log: log.With().Str("component", "history_store").Logger(),
	}, nil
}

// Close releases the underlying database handle
func (h *HistoryStore) Close() error {
	return h.db.Close()
}

// SaveDailyPrices upserts bars for a symbol
func (h *HistoryStore) SaveDailyPrices(symbol string, bars []domain.PriceBar) error {
	tx, err := h.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO daily_prices (symbol, date, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open = excluded.open,
			high = excluded.high,
			low = excluded.low,
			close = excluded.close,
			volume = excluded.volume
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Date.Format(dateLayout), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert bar %s/%s: %w", symbol, b.Date.Format(dateLayout), err)
		}
	}

	return tx.Commit()
}

// GetDailyPrices returns up to limit of the most recent bars for a symbol,
// in ascending chronological order
func (h *HistoryStore) GetDailyPrices(ctx context.Context, symbol string, limit int) (domain.PriceSeries, error) {
	if limit <= 0 {
		limit = DefaultLookbackBars
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT date, open, high, low, close, volume
		FROM daily_prices
		WHERE symbol = ?
		ORDER BY date DESC
		LIMIT ?
	`, symbol, limit)
	if err != nil {
		return domain.PriceSeries{}, fmt.Errorf("failed to query daily prices: %w", err)
	}
	defer rows.Close()

	var bars []domain.PriceBar
	for rows.Next() {
		var b domain.PriceBar
		var date string
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return domain.PriceSeries{}, fmt.Errorf("failed to scan price row: %w", err)
		}
		b.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return domain.PriceSeries{}, fmt.Errorf("malformed date %q for %s: %w", date, symbol, err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return domain.PriceSeries{}, fmt.Errorf("failed to iterate price rows: %w", err)
	}

	// Newest-first from the query; flip to the ascending order the
	// analysis packages require
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}

	return domain.PriceSeries{Symbol: symbol, Bars: bars}, nil
}

// Fetch is a scanner.FetchFunc over the default lookback window
func (h *HistoryStore) Fetch(ctx context.Context, symbol string) (domain.PriceSeries, error) {
	return h.GetDailyPrices(ctx, symbol, DefaultLookbackBars)
}
