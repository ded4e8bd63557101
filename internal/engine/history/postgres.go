package history

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/anatolykoptev/go_cvmatch/internal/engine"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

type postgresStore struct {
	pool *pgxpool.Pool
}

// openPostgres creates a pgx pool and runs schema migrations.
func openPostgres(ctx context.Context, databaseURL string) (*postgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if _, err := engine.RetryDo(ctx, engine.DefaultRetryConfig, func() (struct{}, error) {
		return struct{}{}, pool.Ping(ctx)
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &postgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("history postgres connected", slog.String("addr", config.ConnConfig.Host))
	return s, nil
}

func (s *postgresStore) runMigrations(ctx context.Context) error {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return fmt.Errorf("read schema dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		if _, err := s.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("execute %s: %w", entry.Name(), err)
		}
		slog.Debug("migration applied", slog.String("file", entry.Name()))
	}
	return nil
}

func (s *postgresStore) Save(ctx context.Context, r Record) (int64, error) {
	if err := validate(r); err != nil {
		return 0, err
	}
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = time.Now().UTC()
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO analyses (document_id, job_title, overall, skills_match, analyzed_at, result)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (document_id) DO UPDATE SET
		   job_title = EXCLUDED.job_title, overall = EXCLUDED.overall,
		   skills_match = EXCLUDED.skills_match, analyzed_at = EXCLUDED.analyzed_at,
		   result = EXCLUDED.result
		 RETURNING id`,
		r.DocumentID, r.JobTitle, r.Overall, r.SkillsMatch, r.AnalyzedAt, []byte(r.Result),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("history: insert: %w", err)
	}
	return id, nil
}

func (s *postgresStore) Get(ctx context.Context, documentID string) (*Record, error) {
	var r Record
	var result []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, document_id, COALESCE(job_title,''), overall, skills_match, analyzed_at, result
		 FROM analyses WHERE document_id = $1`, documentID,
	).Scan(&r.ID, &r.DocumentID, &r.JobTitle, &r.Overall, &r.SkillsMatch, &r.AnalyzedAt, &result)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history: get: %w", err)
	}
	r.Result = result
	return &r, nil
}

func (s *postgresStore) List(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, document_id, COALESCE(job_title,''), overall, skills_match, analyzed_at
		 FROM analyses ORDER BY analyzed_at DESC, id DESC LIMIT $1`, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.DocumentID, &r.JobTitle, &r.Overall, &r.SkillsMatch, &r.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
