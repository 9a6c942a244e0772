// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuivocab/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a keyed record does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps SQLite access for game data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection keeps read-modify-write sequences on the same SQLite handle.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS word_progress (
			english TEXT PRIMARY KEY,
			attempts INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			last_studied TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS favorites (
			english TEXT PRIMARY KEY,
			added_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			level TEXT NOT NULL,
			score INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set overwrites the value stored under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}

// GetProgress returns the study progress of one word, or ErrNotFound.
func (s *Store) GetProgress(ctx context.Context, english string) (model.ProgressRecord, error) {
	rec := model.ProgressRecord{English: english}
	var lastStudied string
	err := s.db.QueryRowContext(ctx,
		`SELECT attempts, correct, last_studied FROM word_progress WHERE english = ?`, english,
	).Scan(&rec.Attempts, &rec.Correct, &lastStudied)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ProgressRecord{}, ErrNotFound
	}
	if err != nil {
		return model.ProgressRecord{}, err
	}
	rec.LastStudied, err = time.Parse(time.RFC3339Nano, lastStudied)
	if err != nil {
		return model.ProgressRecord{}, fmt.Errorf("failed to parse last_studied for %q: %w", english, err)
	}
	return rec, nil
}

// SaveProgress records one study attempt for a word.
func (s *Store) SaveProgress(ctx context.Context, english string, correct bool, at time.Time) error {
	correctInt := 0
	if correct {
		correctInt = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO word_progress (english, attempts, correct, last_studied) VALUES (?, 1, ?, ?)
		 ON CONFLICT(english) DO UPDATE SET
			attempts = attempts + 1,
			correct = correct + excluded.correct,
			last_studied = excluded.last_studied`,
		english, correctInt, at.Format(time.RFC3339Nano))
	return err
}

// ListProgress returns every progress record keyed by English text.
func (s *Store) ListProgress(ctx context.Context) (map[string]model.ProgressRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT english, attempts, correct, last_studied FROM word_progress`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	result := map[string]model.ProgressRecord{}
	for rows.Next() {
		var rec model.ProgressRecord
		var lastStudied string
		if err := rows.Scan(&rec.English, &rec.Attempts, &rec.Correct, &lastStudied); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, lastStudied)
		if err != nil {
			return nil, err
		}
		rec.LastStudied = parsed
		result[rec.English] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AddFavorite marks a word as favorite. Adding twice keeps the first timestamp.
func (s *Store) AddFavorite(ctx context.Context, english string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO favorites (english, added_at) VALUES (?, ?) ON CONFLICT(english) DO NOTHING`,
		english, at.Format(time.RFC3339Nano))
	return err
}

// RemoveFavorite clears a favorite mark.
func (s *Store) RemoveFavorite(ctx context.Context, english string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE english = ?`, english)
	return err
}

// ListFavorites returns favorite words in the order they were added.
func (s *Store) ListFavorites(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT english FROM favorites ORDER BY added_at ASC, english ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []string
	for rows.Next() {
		var english string
		if err := rows.Scan(&english); err != nil {
			return nil, err
		}
		result = append(result, english)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// InsertSession stores a committed game session.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, mode, level, score, correct, incorrect, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		string(rec.Mode),
		string(rec.Level),
		rec.Score,
		rec.Correct,
		rec.Incorrect,
		rec.StartedAt.Format(time.RFC3339Nano),
		rec.EndedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSessions returns session aggregates filtered by stats config, oldest first.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != "" {
		clauses = append(clauses, "mode = ?")
		args = append(args, string(cfg.Mode))
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, session_id, mode, score, correct, incorrect, started_at, ended_at
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var mode, startedAt, endedAt string
		if err := rows.Scan(&agg.ID, &agg.SessionID, &mode, &agg.Score, &agg.Correct, &agg.Incorrect, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		started, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		ended, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.Mode = model.ModeID(mode)
		agg.EndedAt = ended
		agg.DurationMs = ended.Sub(started).Milliseconds()
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}
