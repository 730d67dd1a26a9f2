// Package store persists profile state in Postgres. Each profile is a
// single JSONB blob keyed by uuid — the store knows nothing about the
// progression rules, it just loads and saves opaque state.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/kotoba-learn/backend/internal/config"
	"github.com/kotoba-learn/backend/internal/models"
)

func Connect(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS profiles (
		id         UUID PRIMARY KEY,
		state      JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// ProfileStore implements progression.StateStore on Postgres.
type ProfileStore struct {
	db *sql.DB
}

func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// CreateProfile inserts a new profile row and returns its id.
func (ps *ProfileStore) CreateProfile(ctx context.Context, state models.ProfileState) (uuid.UUID, error) {
	id := uuid.New()
	blob, err := json.Marshal(state)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshaling state: %w", err)
	}
	_, err = ps.db.ExecContext(ctx,
		`INSERT INTO profiles (id, state) VALUES ($1, $2)`, id, blob)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting profile: %w", err)
	}
	return id, nil
}

// Load returns the stored state for a profile. A missing row or an
// unreadable blob both yield the documented initial state rather than
// an error — a profile id is a promise, never a 404. Stored blobs are
// decoded over the defaults so fields added since the blob was written
// keep their zero-state values.
func (ps *ProfileStore) Load(ctx context.Context, id uuid.UUID) (models.ProfileState, error) {
	var blob []byte
	err := ps.db.QueryRowContext(ctx,
		`SELECT state FROM profiles WHERE id = $1`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return models.InitialProfileState(), nil
	}
	if err != nil {
		return models.ProfileState{}, fmt.Errorf("loading profile %s: %w", id, err)
	}

	state := models.InitialProfileState()
	if err := json.Unmarshal(blob, &state); err != nil {
		log.Printf("[store] corrupt state for profile %s, resetting: %v", id, err)
		return models.InitialProfileState(), nil
	}
	return state, nil
}

// Save upserts the full state blob.
func (ps *ProfileStore) Save(ctx context.Context, id uuid.UUID, state models.ProfileState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	_, err = ps.db.ExecContext(ctx, `
		INSERT INTO profiles (id, state) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET state = $2, updated_at = NOW()`,
		id, blob)
	if err != nil {
		return fmt.Errorf("saving profile %s: %w", id, err)
	}
	return nil
}
