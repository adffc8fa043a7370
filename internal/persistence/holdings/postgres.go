package holdings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver
	"github.com/lib/pq"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"folio-api/pkg/portfolio"
)

// PostgresStore keeps holdings in a single table. Save replaces the stored
// list in one transaction: rows absent from the new list are deleted, the
// rest are upserted with their display position.
type PostgresStore struct {
	conn sqlx.SqlConn
}

// NewPostgresStore wires a store over an existing connection.
func NewPostgresStore(conn sqlx.SqlConn) *PostgresStore {
	return &PostgresStore{conn: conn}
}

// Schema is the DDL for the holdings table. Applied by scripts/schema.sql;
// kept here so the store and the migration cannot drift silently.
const Schema = `
CREATE TABLE IF NOT EXISTS public.holdings (
    id           TEXT PRIMARY KEY,
    symbol       TEXT NOT NULL UNIQUE,
    name         TEXT NOT NULL,
    shares       DOUBLE PRECISION NOT NULL,
    total_cost   DOUBLE PRECISION NOT NULL,
    price        DOUBLE PRECISION NOT NULL,
    price_change DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_updated TIMESTAMPTZ NOT NULL,
    position     INT NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

type holdingRow struct {
	ID          string    `db:"id"`
	Symbol      string    `db:"symbol"`
	Name        string    `db:"name"`
	Shares      float64   `db:"shares"`
	TotalCost   float64   `db:"total_cost"`
	Price       float64   `db:"price"`
	PriceChange float64   `db:"price_change"`
	LastUpdated time.Time `db:"last_updated"`
	Position    int       `db:"position"`
}

func (p *PostgresStore) Load(ctx context.Context) ([]portfolio.Holding, error) {
	query := `
SELECT id, symbol, name, shares, total_cost, price, price_change, last_updated, position
FROM public.holdings
ORDER BY position ASC`

	var rows []holdingRow
	if err := p.conn.QueryRowsCtx(ctx, &rows, query); err != nil {
		if err == sqlx.ErrNotFound || err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("holdings: query: %w", err)
	}

	out := make([]portfolio.Holding, 0, len(rows))
	for _, row := range rows {
		out = append(out, portfolio.Holding{
			ID:          row.ID,
			Symbol:      row.Symbol,
			Name:        row.Name,
			Shares:      row.Shares,
			TotalCost:   row.TotalCost,
			Price:       row.Price,
			PriceChange: row.PriceChange,
			LastUpdated: row.LastUpdated.UTC(),
		})
	}
	return out, nil
}

func (p *PostgresStore) Save(ctx context.Context, holdings []portfolio.Holding) error {
	ids := make([]string, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.ID)
	}

	return p.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		if len(ids) == 0 {
			if _, err := session.ExecCtx(ctx, `DELETE FROM public.holdings`); err != nil {
				return fmt.Errorf("holdings: clear: %w", err)
			}
			return nil
		}

		if _, err := session.ExecCtx(ctx,
			`DELETE FROM public.holdings WHERE id <> ALL($1)`,
			pq.Array(ids),
		); err != nil {
			return fmt.Errorf("holdings: prune: %w", err)
		}

		stmt := `
INSERT INTO public.holdings (
    id, symbol, name, shares, total_cost, price, price_change, last_updated, position, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
)
ON CONFLICT (id) DO UPDATE SET
    symbol = EXCLUDED.symbol,
    name = EXCLUDED.name,
    shares = EXCLUDED.shares,
    total_cost = EXCLUDED.total_cost,
    price = EXCLUDED.price,
    price_change = EXCLUDED.price_change,
    last_updated = EXCLUDED.last_updated,
    position = EXCLUDED.position,
    updated_at = NOW();`

		for i, h := range holdings {
			if _, err := session.ExecCtx(ctx, stmt,
				h.ID,
				h.Symbol,
				h.Name,
				h.Shares,
				h.TotalCost,
				h.Price,
				h.PriceChange,
				h.LastUpdated.UTC(),
				i,
			); err != nil {
				return fmt.Errorf("holdings: upsert %s: %w", h.Symbol, err)
			}
		}
		return nil
	})
}
