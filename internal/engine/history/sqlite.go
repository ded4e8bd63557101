package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so analyzed_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type sqliteStore struct {
	db *sql.DB
}

// openSQLite opens (or creates) the SQLite history database at path.
func openSQLite(ctx context.Context, path string) (*sqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("history: mkdir %s: %w", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSQLiteSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: init schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

// initSQLiteSchema creates the analyses table if it doesn't exist.
func initSQLiteSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS analyses (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id  TEXT NOT NULL UNIQUE,
		job_title    TEXT,
		overall      INTEGER NOT NULL,
		skills_match INTEGER NOT NULL,
		analyzed_at  TEXT NOT NULL,
		result       TEXT NOT NULL
	)`)
	return err
}

func (s *sqliteStore) Save(ctx context.Context, r Record) (int64, error) {
	if err := validate(r); err != nil {
		return 0, err
	}
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = time.Now().UTC()
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO analyses (document_id, job_title, overall, skills_match, analyzed_at, result)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET
		   job_title = excluded.job_title, overall = excluded.overall,
		   skills_match = excluded.skills_match, analyzed_at = excluded.analyzed_at,
		   result = excluded.result
		 RETURNING id`,
		r.DocumentID, r.JobTitle, r.Overall, r.SkillsMatch,
		r.AnalyzedAt.UTC().Format(timeLayout), string(r.Result),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("history: insert: %w", err)
	}
	return id, nil
}

func (s *sqliteStore) Get(ctx context.Context, documentID string) (*Record, error) {
	var r Record
	var title sql.NullString
	var at, result string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, document_id, job_title, overall, skills_match, analyzed_at, result
		 FROM analyses WHERE document_id = ?`, documentID,
	).Scan(&r.ID, &r.DocumentID, &title, &r.Overall, &r.SkillsMatch, &at, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: get: %w", err)
	}
	r.JobTitle = title.String
	r.AnalyzedAt, _ = time.Parse(timeLayout, at)
	r.Result = []byte(result)
	return &r, nil
}

func (s *sqliteStore) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, document_id, job_title, overall, skills_match, analyzed_at
		 FROM analyses ORDER BY analyzed_at DESC, id DESC LIMIT ?`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		var title sql.NullString
		var at string
		if err := rows.Scan(&r.ID, &r.DocumentID, &title, &r.Overall, &r.SkillsMatch, &at); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		r.JobTitle = title.String
		r.AnalyzedAt, _ = time.Parse(timeLayout, at)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
