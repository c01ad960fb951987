// Package store persists raid history in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists raid outcomes in SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS raids (
	id         TEXT PRIMARY KEY,
	seed       INTEGER NOT NULL,
	foxes      INTEGER NOT NULL,
	rounds     INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS seat_results (
	raid_id     TEXT NOT NULL REFERENCES raids(id) ON DELETE CASCADE,
	agent_id    INTEGER NOT NULL,
	den         TEXT NOT NULL,
	escaped     INTEGER NOT NULL,
	caught      INTEGER NOT NULL,
	loot        INTEGER NOT NULL,
	burrow_used INTEGER NOT NULL,
	PRIMARY KEY (raid_id, agent_id)
);
`

// RaidRecord is one persisted raid header row.
type RaidRecord struct {
	ID        string
	Seed      uint64
	Foxes     int
	Rounds    int
	CreatedAt time.Time
}

// SeatResult is one fox's outcome within a raid.
type SeatResult struct {
	RaidID     string
	AgentID    int
	Den        string
	Escaped    bool
	Caught     bool
	Loot       int
	BurrowUsed bool
}

// Open opens a SQLite raid store at path and ensures the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRaid inserts one raid and its seat results in a single
// transaction.
func (s *Store) SaveRaid(ctx context.Context, rec RaidRecord, seats []SeatResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.ID == "" {
		return fmt.Errorf("raid id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO raids (id, seed, foxes, rounds, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, int64(rec.Seed), rec.Foxes, rec.Rounds, rec.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert raid %s: %w", rec.ID, err)
	}
	for _, seat := range seats {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO seat_results (raid_id, agent_id, den, escaped, caught, loot, burrow_used)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ID, seat.AgentID, seat.Den, seat.Escaped, seat.Caught, seat.Loot, seat.BurrowUsed,
		)
		if err != nil {
			return fmt.Errorf("insert seat %d of raid %s: %w", seat.AgentID, rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit raid %s: %w", rec.ID, err)
	}
	return nil
}

// GetRaid returns one raid header by id.
func (s *Store) GetRaid(ctx context.Context, id string) (RaidRecord, error) {
	var rec RaidRecord
	var seed, created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, seed, foxes, rounds, created_at FROM raids WHERE id = ?`, id,
	).Scan(&rec.ID, &seed, &rec.Foxes, &rec.Rounds, &created)
	if err != nil {
		return RaidRecord{}, fmt.Errorf("get raid %s: %w", id, err)
	}
	rec.Seed = uint64(seed)
	rec.CreatedAt = time.UnixMilli(created).UTC()
	return rec, nil
}

// ListRaids returns the most recent raids, newest first.
func (s *Store) ListRaids(ctx context.Context, limit int) ([]RaidRecord, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, foxes, rounds, created_at FROM raids ORDER BY created_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list raids: %w", err)
	}
	defer rows.Close()

	var out []RaidRecord
	for rows.Next() {
		var rec RaidRecord
		var seed, created int64
		if err := rows.Scan(&rec.ID, &seed, &rec.Foxes, &rec.Rounds, &created); err != nil {
			return nil, fmt.Errorf("scan raid: %w", err)
		}
		rec.Seed = uint64(seed)
		rec.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate raids: %w", err)
	}
	return out, nil
}

// SeatResults returns the per-fox outcomes for one raid, by agent id.
func (s *Store) SeatResults(ctx context.Context, raidID string) ([]SeatResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT raid_id, agent_id, den, escaped, caught, loot, burrow_used
		 FROM seat_results WHERE raid_id = ? ORDER BY agent_id`, raidID,
	)
	if err != nil {
		return nil, fmt.Errorf("seat results for %s: %w", raidID, err)
	}
	defer rows.Close()

	var out []SeatResult
	for rows.Next() {
		var seat SeatResult
		if err := rows.Scan(&seat.RaidID, &seat.AgentID, &seat.Den, &seat.Escaped, &seat.Caught, &seat.Loot, &seat.BurrowUsed); err != nil {
			return nil, fmt.Errorf("scan seat: %w", err)
		}
		out = append(out, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seats: %w", err)
	}
	return out, nil
}

// EscapeRate returns the fraction of recorded seats that escaped with
// loot, for quick sanity checks over a batch of raids.
func (s *Store) EscapeRate(ctx context.Context) (float64, error) {
	var total, escaped int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(escaped), 0) FROM seat_results`,
	).Scan(&total, &escaped)
	if err != nil {
		return 0, fmt.Errorf("escape rate: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(escaped) / float64(total), nil
}
