package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/matches-service/internal/domain/matches"
)

// SQLiteStore keeps one row per match, ordered by position.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLiteStore opens/creates a SQLite database and runs migrations.
func OpenSQLiteStore(path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps :memory: databases shared across calls
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS matches (
  position INTEGER PRIMARY KEY,
  id TEXT NOT NULL,
  payload TEXT NOT NULL
);
`)
	return err
}

// Load reads every row in position order. Query or decode failures yield an empty list.
func (s *SQLiteStore) Load(ctx context.Context) []matches.Match {
	list, err := s.load(ctx)
	if err != nil {
		warnLoad(ctx, s.logger, KindSQLite, err)
		return []matches.Match{}
	}
	return list
}

func (s *SQLiteStore) load(ctx context.Context) ([]matches.Match, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM matches ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	list := make([]matches.Match, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var m matches.Match
		if err := json.Unmarshal([]byte(payload), &m); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Save replaces all rows with list inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, list []matches.Match) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO matches(position, id, payload) VALUES(?,?,?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, m := range list {
		payload, err := json.Marshal(m)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, i, m.ID, string(payload)); err != nil {
			return err
		}
	}
	return tx.Commit()
}
