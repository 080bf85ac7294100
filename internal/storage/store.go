// Package storage persists game state snapshots.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/bombbusters/bombbusters-server-go/internal/config"
	"github.com/bombbusters/bombbusters-server-go/internal/game/model"
)

var (
	// ErrNotFound is returned when no snapshot exists for a game.
	ErrNotFound = errors.New("game not found")
	// ErrChecksumMismatch is returned when a stored snapshot fails verification.
	ErrChecksumMismatch = errors.New("snapshot checksum mismatch")
)

// Summary describes a stored game without loading its snapshot.
type Summary struct {
	ID        string
	Mission   model.MissionID
	Checksum  string
	UpdatedAt time.Time
}

// Store persists game states.
type Store interface {
	Save(ctx context.Context, state *model.GameState) error
	Load(ctx context.Context, id string) (*model.GameState, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// SQLStore is a Store backed by database/sql, on SQLite or PostgreSQL.
type SQLStore struct {
	db       *sql.DB
	postgres bool
	logger   *zap.Logger
}

// Open connects to the configured database and applies migrations.
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var driver string
	switch cfg.Driver {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	if driver == "sqlite" {
		// One connection keeps ":memory:" databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	s := &SQLStore{db: db, postgres: driver == "pgx", logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("storage initialized", zap.String("driver", cfg.Driver))
	return s, nil
}

// rebind rewrites "?" placeholders to "$n" for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Save inserts or replaces the snapshot of state.
func (s *SQLStore) Save(ctx context.Context, state *model.GameState) error {
	if state == nil || state.ID == "" {
		return errors.New("game state must have an id")
	}
	snapshot, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", state.ID, err)
	}
	checksum := Checksum(state)

	createdAt := state.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO games (id, mission, snapshot, checksum, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			mission = excluded.mission,
			snapshot = excluded.snapshot,
			checksum = excluded.checksum,
			updated_at = excluded.updated_at`),
		state.ID, int(state.Mission), string(snapshot), checksum, createdAt.UnixNano(), updatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("save game %s: %w", state.ID, err)
	}

	s.logger.Debug("game saved",
		zap.String("game_id", state.ID),
		zap.String("checksum", checksum),
	)
	return nil
}

// Load reads and verifies the snapshot of game id.
func (s *SQLStore) Load(ctx context.Context, id string) (*model.GameState, error) {
	var snapshot, checksum string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT snapshot, checksum FROM games WHERE id = ?`), id).
		Scan(&snapshot, &checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	var state model.GameState
	if err := json.Unmarshal([]byte(snapshot), &state); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	if got := Checksum(&state); got != checksum {
		s.logger.Warn("snapshot checksum mismatch",
			zap.String("game_id", id),
			zap.String("stored", checksum),
			zap.String("computed", got),
		)
		return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, id)
	}
	return &state, nil
}

// List returns stored games, most recently updated first.
func (s *SQLStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, mission, checksum, updated_at FROM games ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			mission   int
			updatedAt int64
		)
		if err := rows.Scan(&sum.ID, &mission, &sum.Checksum, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		sum.Mission = model.MissionID(mission)
		sum.UpdatedAt = time.Unix(0, updatedAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the snapshot of game id.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM games WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
