// Package history persists finished analyses so they can be listed and fetched
// by document ID after the cache has expired them.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"
)

// ErrNotFound is returned by Get when no analysis is stored for the document ID.
var ErrNotFound = errors.New("history: analysis not found")

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// Record is one stored analysis. List leaves Result empty.
type Record struct {
	ID          int64           `json:"id"`
	DocumentID  string          `json:"document_id"`
	JobTitle    string          `json:"job_title,omitempty"`
	Overall     int             `json:"overall_compatibility"`
	SkillsMatch int             `json:"skills_match"`
	AnalyzedAt  time.Time       `json:"analyzed_at"`
	Result      json.RawMessage `json:"result,omitempty"`
}

// Store saves and reads analysis records. Saving a document ID again replaces
// the previous record.
type Store interface {
	Save(ctx context.Context, r Record) (int64, error)
	Get(ctx context.Context, documentID string) (*Record, error)
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// Open connects to Postgres when databaseURL is set, otherwise opens (or creates)
// the SQLite file at sqlitePath, or DefaultPath when that is empty too.
func Open(ctx context.Context, databaseURL, sqlitePath string) (Store, error) {
	if databaseURL != "" {
		s, err := openPostgres(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	if sqlitePath == "" {
		sqlitePath = DefaultPath()
	}
	s, err := openSQLite(ctx, sqlitePath)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DefaultPath is $HOME/.go_cvmatch/history.db.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".go_cvmatch", "history.db")
}

// NewRecord builds a record from a finished analysis.
func NewRecord(r *cvopt.AnalysisResult, jobTitle string) (Record, error) {
	if r == nil {
		return Record{}, errors.New("history: nil analysis")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return Record{}, fmt.Errorf("history: encode analysis: %w", err)
	}
	return Record{
		DocumentID:  r.DocumentID,
		JobTitle:    jobTitle,
		Overall:     r.Scores.OverallCompatibility,
		SkillsMatch: r.Scores.SkillsMatch,
		AnalyzedAt:  time.Now().UTC(),
		Result:      data,
	}, nil
}

// Analysis decodes the stored result.
func (r Record) Analysis() (*cvopt.AnalysisResult, error) {
	if len(r.Result) == 0 {
		return nil, errors.New("history: record has no result")
	}
	var out cvopt.AnalysisResult
	if err := json.Unmarshal(r.Result, &out); err != nil {
		return nil, fmt.Errorf("history: decode analysis: %w", err)
	}
	return &out, nil
}

func validate(r Record) error {
	if r.DocumentID == "" {
		return errors.New("history: document id is required")
	}
	if len(r.Result) == 0 {
		return errors.New("history: result is required")
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return defaultListLimit
	}
	return limit
}
