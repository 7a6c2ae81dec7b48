package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/malingi/accabot/internal/pkg/models"
)

// Ensure PostgresPickStorage implements PickStorage
var _ PickStorage = (*PostgresPickStorage)(nil)

// PostgresPickStorage stores accumulator picks with their legs as JSONB.
type PostgresPickStorage struct {
	db *sql.DB
}

// NewPostgresPickStorage opens a PostgreSQL connection and creates the picks
// table if it does not exist yet.
func NewPostgresPickStorage(dsn string) (*PostgresPickStorage, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresPickStorage{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL pick storage initialized successfully")
	return s, nil
}

func (s *PostgresPickStorage) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS picks (
		id VARCHAR(100) PRIMARY KEY,
		created_at TIMESTAMP NOT NULL,
		legs JSONB NOT NULL,
		total_odds DECIMAL(10, 3) NOT NULL,
		stake DECIMAL(12, 2) NOT NULL,
		won BOOLEAN
	);

	CREATE INDEX IF NOT EXISTS idx_picks_created_at ON picks(created_at);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// StorePick saves a pick. Uses UPSERT keyed by pick ID so a re-run of the
// same day's job does not duplicate rows.
func (s *PostgresPickStorage) StorePick(ctx context.Context, pick *models.Accumulator) error {
	legs, err := json.Marshal(pick.Legs)
	if err != nil {
		return fmt.Errorf("failed to marshal legs: %w", err)
	}

	query := `
	INSERT INTO picks (id, created_at, legs, total_odds, stake, won)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		legs = EXCLUDED.legs,
		total_odds = EXCLUDED.total_odds,
		stake = EXCLUDED.stake
	`
	_, err = s.db.ExecContext(ctx, query,
		pick.ID, pick.CreatedAt, legs, pick.TotalOdds, pick.Stake, pick.Won,
	)
	return err
}

// GetPicksSince returns picks created at or after since, newest first.
func (s *PostgresPickStorage) GetPicksSince(ctx context.Context, since time.Time) ([]models.Accumulator, error) {
	query := `
	SELECT id, created_at, legs, total_odds, stake, won FROM picks
	WHERE created_at >= $1
	ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	return scanPicks(rows)
}

// GetRecentPicks returns up to limit most recent picks.
func (s *PostgresPickStorage) GetRecentPicks(ctx context.Context, limit int) ([]models.Accumulator, error) {
	query := `
	SELECT id, created_at, legs, total_odds, stake, won FROM picks
	ORDER BY created_at DESC
	LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query picks: %w", err)
	}
	defer rows.Close()

	return scanPicks(rows)
}

func scanPicks(rows *sql.Rows) ([]models.Accumulator, error) {
	var picks []models.Accumulator
	for rows.Next() {
		var p models.Accumulator
		var legs []byte
		var won sql.NullBool
		if err := rows.Scan(&p.ID, &p.CreatedAt, &legs, &p.TotalOdds, &p.Stake, &won); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		if err := json.Unmarshal(legs, &p.Legs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal legs: %w", err)
		}
		if won.Valid {
			p.Won = &won.Bool
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

// SettlePick marks a pick as won or lost.
func (s *PostgresPickStorage) SettlePick(ctx context.Context, pickID string, won bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE picks SET won = $2 WHERE id = $1`, pickID, won)
	if err != nil {
		return fmt.Errorf("failed to settle pick: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("pick %q not found", pickID)
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresPickStorage) Close() error {
	return s.db.Close()
}
