package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"
)

func analysis(id string, overall int) *cvopt.AnalysisResult {
	return &cvopt.AnalysisResult{
		DocumentID:      id,
		Scores:          cvopt.DimensionalScores{SkillsMatch: overall + 5, OverallCompatibility: overall},
		MatchedKeywords: []cvopt.MatchedKeyword{{Keyword: "Python", Relevance: 100, Frequency: 2, Placement: cvopt.PlacementSkills}},
		MissingKeywords: []cvopt.MissingKeyword{},
		JobKeywords:     []string{"Python"},
	}
}

// exerciseStore runs the behavior every Store implementation shares.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"doc-a", "doc-b", "doc-c"} {
		rec, err := NewRecord(analysis(id, 60+i), "Backend Engineer")
		require.NoError(t, err)
		rec.AnalyzedAt = base.Add(time.Duration(i) * time.Minute)
		got, err := s.Save(ctx, rec)
		require.NoError(t, err)
		assert.Positive(t, got)
	}

	rec, err := s.Get(ctx, "doc-b")
	require.NoError(t, err)
	assert.Equal(t, "doc-b", rec.DocumentID)
	assert.Equal(t, "Backend Engineer", rec.JobTitle)
	assert.Equal(t, 61, rec.Overall)
	assert.Equal(t, 66, rec.SkillsMatch)
	assert.True(t, rec.AnalyzedAt.Equal(base.Add(time.Minute)), "analyzed_at = %v", rec.AnalyzedAt)

	a, err := rec.Analysis()
	require.NoError(t, err)
	assert.Equal(t, "doc-b", a.DocumentID)
	assert.Equal(t, []string{"Python"}, a.JobKeywords)
	require.Len(t, a.MatchedKeywords, 1)
	assert.Equal(t, cvopt.PlacementSkills, a.MatchedKeywords[0].Placement)

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"doc-c", "doc-b", "doc-a"}, []string{list[0].DocumentID, list[1].DocumentID, list[2].DocumentID})
	for _, r := range list {
		assert.Empty(t, r.Result, "List must not load result blobs")
	}

	list, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// saving the same document again replaces it
	first, err := s.Get(ctx, "doc-a")
	require.NoError(t, err)
	again, err := NewRecord(analysis("doc-a", 90), "Staff Engineer")
	require.NoError(t, err)
	again.AnalyzedAt = base.Add(time.Hour)
	id, err := s.Save(ctx, again)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)

	rec, err = s.Get(ctx, "doc-a")
	require.NoError(t, err)
	assert.Equal(t, 90, rec.Overall)
	assert.Equal(t, "Staff Engineer", rec.JobTitle)

	list, err = s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "doc-a", list[0].DocumentID)

	_, err = s.Save(ctx, Record{Result: []byte(`{}`)})
	assert.Error(t, err, "document id is required")
	_, err = s.Save(ctx, Record{DocumentID: "x"})
	assert.Error(t, err, "result is required")
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := Open(context.Background(), "", path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = os.Stat(path)
	require.NoError(t, err, "database file not created")

	exerciseStore(t, s)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(ctx, "", path)
	require.NoError(t, err)
	rec, err := NewRecord(analysis("doc-1", 70), "")
	require.NoError(t, err)
	_, err = s.Save(ctx, rec)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, "", path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 70, got.Overall)
	assert.Empty(t, got.JobTitle)
}

func TestOpen_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open(context.Background(), "", "")
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(home, ".go_cvmatch", "history.db"))
	assert.NoError(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn, "")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	pg := s.(*postgresStore)
	_, err = pg.pool.Exec(ctx, `TRUNCATE analyses`)
	require.NoError(t, err)

	exerciseStore(t, s)
}

func TestNewRecord(t *testing.T) {
	_, err := NewRecord(nil, "")
	assert.Error(t, err)

	rec, err := NewRecord(analysis("doc-9", 42), "Analyst")
	require.NoError(t, err)
	assert.Equal(t, "doc-9", rec.DocumentID)
	assert.Equal(t, 42, rec.Overall)
	assert.Equal(t, 47, rec.SkillsMatch)
	assert.False(t, rec.AnalyzedAt.IsZero())
	assert.NotEmpty(t, rec.Result)

	_, err = Record{}.Analysis()
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, defaultListLimit},
		{-1, defaultListLimit},
		{10, 10},
		{maxListLimit, maxListLimit},
		{maxListLimit + 1, defaultListLimit},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
