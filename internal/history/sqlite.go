package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS event_outcomes (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	event_date       TEXT NOT NULL,
	total            REAL NOT NULL,
	yes              REAL NOT NULL,
	maybe            REAL NOT NULL,
	no               REAL NOT NULL,
	attended_yes     REAL NOT NULL,
	attended_maybe   REAL NOT NULL,
	attended_no      REAL NOT NULL,
	attended_unknown REAL NOT NULL,
	created_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_event_outcomes_date ON event_outcomes(event_date);
`

// SQLiteStore keeps event outcomes in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writes are serialized by SQLite anyway.
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("History database ready")
	return &SQLiteStore{db: db}, nil
}

// Add validates and inserts an outcome, assigning an ID and creation time
// when they are missing.
func (s *SQLiteStore) Add(ctx context.Context, o *EventOutcome) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO event_outcomes (id, name, event_date, total, yes, maybe, no,
			attended_yes, attended_maybe, attended_no, attended_unknown, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.Name, o.Date, o.Total, o.Yes, o.Maybe, o.No,
		o.AttendedYes, o.AttendedMaybe, o.AttendedNo, o.AttendedUnknown,
		o.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert outcome %s: %w", o.ID, err)
	}
	return nil
}

// Get returns the outcome with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (EventOutcome, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	o, err := scanOutcome(row)
	if errors.Is(err, sql.ErrNoRows) {
		return EventOutcome{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return EventOutcome{}, fmt.Errorf("failed to read outcome %s: %w", id, err)
	}
	return o, nil
}

// List returns every outcome ordered by event date, then insertion time.
func (s *SQLiteStore) List(ctx context.Context) ([]EventOutcome, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY event_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []EventOutcome
	for rows.Next() {
		o, err := scanOutcome(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// Delete removes the outcome with the given ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM event_outcomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete outcome %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete outcome %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// createdAtLayout is fixed-width so that created_at sorts chronologically as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectColumns = `
	SELECT id, name, event_date, total, yes, maybe, no,
		attended_yes, attended_maybe, attended_no, attended_unknown, created_at
	FROM event_outcomes`

type scanner interface {
	Scan(dest ...any) error
}

func scanOutcome(sc scanner) (EventOutcome, error) {
	var o EventOutcome
	var createdAt string
	err := sc.Scan(&o.ID, &o.Name, &o.Date, &o.Total, &o.Yes, &o.Maybe, &o.No,
		&o.AttendedYes, &o.AttendedMaybe, &o.AttendedNo, &o.AttendedUnknown, &createdAt)
	if err != nil {
		return EventOutcome{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		o.CreatedAt = t
	}
	return o, nil
}
