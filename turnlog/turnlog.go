// Package turnlog records every processed player command in a local SQLite
// database. The log is append-only and exists for replaying sessions and
// studying which commands players reach for.
package turnlog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Acolyte-Luu/jp-mud/types"
)

// Turn is one logged command with the state snapshot taken after it ran.
type Turn struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Input     string    `json:"input"`
	Response  string    `json:"response"`
	Location  string    `json:"location"`
	Narrated  bool      `json:"narrated"`
	Stats     string    `json:"stats"`
}

// Logger writes turns to a SQLite file.
type Logger struct {
	db *sql.DB
}

// Open creates or opens the turn database at path.
func Open(path string) (*Logger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening turn log %s: %w", path, err)
	}

	logger := &Logger{db: db}
	if err := logger.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing turn log schema: %w", err)
	}
	return logger, nil
}

func (l *Logger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		input TEXT NOT NULL,
		response TEXT NOT NULL,
		location TEXT NOT NULL,
		narrated INTEGER NOT NULL DEFAULT 0,
		stats TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_turns_timestamp ON turns(timestamp);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Record appends one turn. narrated marks responses that came from the
// language model rather than the command interpreter.
func (l *Logger) Record(input, response string, gs *types.GameState, narrated bool) error {
	stats, err := json.Marshal(gs.Player.Stats)
	if err != nil {
		return fmt.Errorf("encoding player stats: %w", err)
	}

	_, err = l.db.Exec(`
		INSERT INTO turns (input, response, location, narrated, stats)
		VALUES (?, ?, ?, ?, ?)
	`, input, response, gs.Player.CurrentLocation, narrated, string(stats))
	if err != nil {
		return fmt.Errorf("recording turn: %w", err)
	}
	return nil
}

// Recent returns up to limit turns, newest first.
func (l *Logger) Recent(limit int) ([]Turn, error) {
	rows, err := l.db.Query(`
		SELECT id, timestamp, input, response, location, narrated, stats
		FROM turns ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.Timestamp, &t.Input, &t.Response, &t.Location, &t.Narrated, &t.Stats); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Close releases the underlying database handle.
func (l *Logger) Close() error {
	return l.db.Close()
}
