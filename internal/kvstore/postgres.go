package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres keeps snapshots in the kv_snapshots table, one row per name.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT value FROM kv_snapshots
		WHERE name = $1
	`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get snapshot %q: %w", name, err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, name string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_snapshots (name, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to set snapshot %q: %w", name, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, name string) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM kv_snapshots WHERE name = $1
	`, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", name, err)
	}
	return nil
}
