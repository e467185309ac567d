package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chainarb/arbscan/internal/domain"
)

// ExecutionStore implements domain.ExecutionStore using PostgreSQL.
type ExecutionStore struct {
	pool *pgxpool.Pool
}

// NewExecutionStore creates a new ExecutionStore.
func NewExecutionStore(pool *pgxpool.Pool) *ExecutionStore {
	return &ExecutionStore{pool: pool}
}

const executionColumns = `id, base, quote, chain, buy_on, sell_on, size_quote, pnl_usd, fees_usd, gas_usd, executed_at, dry_run, tx_hashes, notes`

// Insert persists one execution record.
func (s *ExecutionStore) Insert(ctx context.Context, rec domain.ExecutionRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO executions (`+executionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.ID, rec.Base, rec.Quote, string(rec.Chain), rec.BuyOn, rec.SellOn,
		rec.SizeQuote, rec.PnLUSD, rec.FeesUSD, rec.GasUSD,
		rec.Timestamp, rec.DryRun, rec.TxHashes, rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("postgres: insert execution %s: %w", rec.ID, err)
	}
	return nil
}

// GetByID returns one execution record.
func (s *ExecutionStore) GetByID(ctx context.Context, id string) (domain.ExecutionRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+executionColumns+`
		FROM executions WHERE id = $1`, id)

	rec, err := scanExecution(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ExecutionRecord{}, domain.ErrNotFound
		}
		return domain.ExecutionRecord{}, fmt.Errorf("postgres: get execution %s: %w", id, err)
	}
	return rec, nil
}

// ListRecent returns the most recent executions, newest first.
func (s *ExecutionStore) ListRecent(ctx context.Context, limit int) ([]domain.ExecutionRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+executionColumns+`
		FROM executions ORDER BY executed_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list executions: %w", err)
	}
	defer rows.Close()

	var recs []domain.ExecutionRecord
	for rows.Next() {
		rec, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan execution: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list executions: %w", err)
	}
	return recs, nil
}

// SumPnL returns the total recorded profit and loss since the given time.
func (s *ExecutionStore) SumPnL(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(pnl_usd), 0) FROM executions WHERE executed_at >= $1`,
		since,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("postgres: sum pnl: %w", err)
	}
	return total, nil
}

func scanExecution(row pgx.Row) (domain.ExecutionRecord, error) {
	var rec domain.ExecutionRecord
	var chain string
	err := row.Scan(
		&rec.ID, &rec.Base, &rec.Quote, &chain, &rec.BuyOn, &rec.SellOn,
		&rec.SizeQuote, &rec.PnLUSD, &rec.FeesUSD, &rec.GasUSD,
		&rec.Timestamp, &rec.DryRun, &rec.TxHashes, &rec.Notes,
	)
	if err != nil {
		return domain.ExecutionRecord{}, err
	}
	rec.Chain = domain.ChainID(chain)
	return rec, nil
}

// Compile-time interface check.
var _ domain.ExecutionStore = (*ExecutionStore)(nil)
