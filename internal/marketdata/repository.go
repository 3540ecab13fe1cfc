package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/swingtrader/internal/contracts"
)

// BarStore persists daily bars between runs
type BarStore interface {
	SaveBars(ctx context.Context, symbol string, bars []contracts.PriceBar) error
	LoadBars(ctx context.Context, symbol string, from time.Time) ([]contracts.PriceBar, error)
}

const schema = `
CREATE SCHEMA IF NOT EXISTS market;

CREATE TABLE IF NOT EXISTS market.daily_bars (
	symbol     TEXT             NOT NULL,
	trade_date DATE             NOT NULL,
	open       DOUBLE PRECISION NOT NULL,
	high       DOUBLE PRECISION NOT NULL,
	low        DOUBLE PRECISION NOT NULL,
	close      DOUBLE PRECISION NOT NULL,
	volume     BIGINT           NOT NULL,
	updated_at TIMESTAMPTZ      NOT NULL DEFAULT NOW(),
	PRIMARY KEY (symbol, trade_date)
);
`

// PriceRepository stores daily bars in PostgreSQL
// ⭐ SSOT: 일봉 저장소는 여기서만
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// EnsureSchema creates the bar table when missing
func (r *PriceRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create bar schema: %w", err)
	}
	return nil
}

// SaveBars upserts bars in a single batch
func (r *PriceRepository) SaveBars(ctx context.Context, symbol string, bars []contracts.PriceBar) error {
	if len(bars) == 0 {
		return nil
	}

	query := `
		INSERT INTO market.daily_bars (symbol, trade_date, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			open = EXCLUDED.open,
			high = EXCLUDED.high,
			low = EXCLUDED.low,
			close = EXCLUDED.close,
			volume = EXCLUDED.volume,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, b := range bars {
		batch.Queue(query, symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
	}

	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save bars %s: %w", symbol, err)
	}
	return nil
}

// LoadBars returns bars on or after from, oldest first
func (r *PriceRepository) LoadBars(ctx context.Context, symbol string, from time.Time) ([]contracts.PriceBar, error) {
	query := `
		SELECT trade_date, open, high, low, close, volume
		FROM market.daily_bars
		WHERE symbol = $1 AND trade_date >= $2
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, symbol, from)
	if err != nil {
		return nil, fmt.Errorf("load bars %s: %w", symbol, err)
	}

	bars, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (contracts.PriceBar, error) {
		var b contracts.PriceBar
		err := row.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan bars %s: %w", symbol, err)
	}
	return bars, nil
}
