// Package persistence stores generated boards and calibration targets in
// SQLite.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a board or meta key does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps a SQLite connection for board history.
type DB struct {
	conn *sqlx.DB
}

// BoardRecord is one saved board. Token is enough to rebuild the layout;
// the rest describes the search that produced it.
type BoardRecord struct {
	ID          string    `db:"id" json:"id"`
	Token       string    `db:"token" json:"token"`
	Shape       string    `db:"shape" json:"shape"`
	Quality     float64   `db:"quality" json:"quality"`
	Attempts    int       `db:"attempts" json:"attempts"`
	ElapsedMS   int64     `db:"elapsed_ms" json:"elapsed_ms"`
	OptionsJSON string    `db:"options_json" json:"options"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Calibration is a stored quality target for one shape.
type Calibration struct {
	Shape     string    `db:"shape" json:"shape"`
	Greedy    float64   `db:"greedy" json:"greedy"`
	Fair      float64   `db:"fair" json:"fair"`
	Samples   int       `db:"samples" json:"samples"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL,
		shape TEXT NOT NULL,
		quality REAL NOT NULL,
		attempts INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		options_json TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS calibrations (
		shape TEXT PRIMARY KEY,
		greedy REAL NOT NULL,
		fair REAL NOT NULL,
		samples INTEGER NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_boards_created ON boards(created_at);
	CREATE INDEX IF NOT EXISTS idx_boards_shape ON boards(shape);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveBoard inserts rec, filling in ID and CreatedAt when they are unset,
// and returns the stored record.
func (db *DB) SaveBoard(rec BoardRecord) (BoardRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.OptionsJSON == "" {
		rec.OptionsJSON = "{}"
	}

	_, err := db.conn.NamedExec(`INSERT INTO boards
		(id, token, shape, quality, attempts, elapsed_ms, options_json, created_at)
		VALUES (:id, :token, :shape, :quality, :attempts, :elapsed_ms, :options_json, :created_at)`,
		rec,
	)
	if err != nil {
		return BoardRecord{}, fmt.Errorf("insert board %s: %w", rec.ID, err)
	}
	slog.Debug("board saved", "id", rec.ID, "shape", rec.Shape, "token", rec.Token)
	return rec, nil
}

// GetBoard returns the board saved under id.
func (db *DB) GetBoard(id string) (BoardRecord, error) {
	var rec BoardRecord
	err := db.conn.Get(&rec, "SELECT * FROM boards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return BoardRecord{}, fmt.Errorf("board %s: %w", id, ErrNotFound)
	}
	return rec, err
}

// RecentBoards returns up to limit boards, newest first.
func (db *DB) RecentBoards(limit int) ([]BoardRecord, error) {
	var recs []BoardRecord
	err := db.conn.Select(&recs,
		"SELECT * FROM boards ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return recs, err
}

// AllBoards returns every saved board, oldest first.
func (db *DB) AllBoards() ([]BoardRecord, error) {
	var recs []BoardRecord
	err := db.conn.Select(&recs, "SELECT * FROM boards ORDER BY created_at, rowid")
	return recs, err
}

// SaveCalibration stores or replaces the target for c.Shape.
func (db *DB) SaveCalibration(c Calibration) error {
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO calibrations
		(shape, greedy, fair, samples, updated_at)
		VALUES (:shape, :greedy, :fair, :samples, :updated_at)`,
		c,
	)
	return err
}

// LoadCalibrations returns every stored target, ordered by shape.
func (db *DB) LoadCalibrations() ([]Calibration, error) {
	var cals []Calibration
	err := db.conn.Select(&cals, "SELECT * FROM calibrations ORDER BY shape")
	return cals, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("meta %q: %w", key, ErrNotFound)
	}
	return value, err
}
