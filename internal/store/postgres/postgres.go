// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/slidecast/internal/model"
	"github.com/groblegark/slidecast/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewFromDB wraps an existing database handle without running migrations.
// Used by tests with a mock connection.
func NewFromDB(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetDeckState(ctx context.Context, deckID string) (*model.DeckState, error) {
	const q = `SELECT deck_id, slide, updated_at FROM deck_states WHERE deck_id = $1`

	var state model.DeckState
	err := s.db.QueryRowContext(ctx, q, deckID).Scan(&state.DeckID, &state.Slide, &state.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get deck state: %w", err)
	}
	return &state, nil
}

func (s *PostgresStore) SetDeckState(ctx context.Context, deckID string, slide int) error {
	const q = `
		INSERT INTO deck_states (deck_id, slide, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (deck_id) DO UPDATE
		SET slide = EXCLUDED.slide, updated_at = EXCLUDED.updated_at`

	if _, err := s.db.ExecContext(ctx, q, deckID, slide); err != nil {
		return fmt.Errorf("set deck state: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendReaction(ctx context.Context, r *model.Reaction) error {
	// Opportunistic purge keeps the queue bounded without a background job.
	const purge = `DELETE FROM deck_reactions WHERE deck_id = $1 AND expires_at <= now()`
	if _, err := s.db.ExecContext(ctx, purge, r.DeckID); err != nil {
		return fmt.Errorf("purge expired reactions: %w", err)
	}

	const q = `
		INSERT INTO deck_reactions (id, deck_id, emoji, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := s.db.ExecContext(ctx, q, r.ID, r.DeckID, r.Emoji, r.CreatedAt, r.ExpiresAt); err != nil {
		return fmt.Errorf("append reaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListReactions(ctx context.Context, deckID string) ([]*model.Reaction, error) {
	const q = `
		SELECT id, deck_id, emoji, created_at, expires_at
		FROM deck_reactions
		WHERE deck_id = $1 AND expires_at > now()
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, q, deckID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	var out []*model.Reaction
	for rows.Next() {
		var r model.Reaction
		if err := rows.Scan(&r.ID, &r.DeckID, &r.Emoji, &r.CreatedAt, &r.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reactions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) ListDeckStates(ctx context.Context) ([]*model.DeckState, error) {
	const q = `SELECT deck_id, slide, updated_at FROM deck_states ORDER BY deck_id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list deck states: %w", err)
	}
	defer rows.Close()

	var out []*model.DeckState
	for rows.Next() {
		var state model.DeckState
		if err := rows.Scan(&state.DeckID, &state.Slide, &state.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deck state: %w", err)
		}
		out = append(out, &state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deck states: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
