package cvopt

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	analystResume = "Data analyst with Python and Excel."
	analystJD     = "Required: 3 years experience in Python, SQL, and cloud infrastructure."
)

func TestAnalyze_Scenario(t *testing.T) {
	r := Analyze(analystResume, analystJD, Options{RefYear: 2026})
	require.NotNil(t, r)

	assert.Equal(t, []string{"Python", "Experience", "Cloud", "Required", "Years", "Sql", "Infrastructure"}, r.JobKeywords)
	assert.Less(t, r.Scores.SkillsMatch, 100)

	var missing []string
	for _, m := range r.MissingKeywords {
		missing = append(missing, m.Keyword)
	}
	assert.Subset(t, missing, []string{"Sql", "Cloud", "Infrastructure"})

	require.NotEmpty(t, r.MatchedKeywords)
	assert.Equal(t, "Python", r.MatchedKeywords[0].Keyword)
	assert.Equal(t, 100-r.Scores.OverallCompatibility, r.ImprovementPotential)
	assert.NotEmpty(t, r.Recommendations)
	assert.Contains(t, r.SkillGap, "Sql")
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	r := Analyze("", "", Options{})
	require.NotNil(t, r)

	assert.Equal(t, 100, r.Scores.SkillsMatch)
	assert.Equal(t, 60, r.Scores.OverallCompatibility)
	assert.NotNil(t, r.MatchedKeywords)
	assert.NotNil(t, r.MissingKeywords)
	assert.NotNil(t, r.JobKeywords)
	assert.NotNil(t, r.ResumeKeywords)
	assert.Empty(t, r.MatchedKeywords)
	assert.Empty(t, r.MissingKeywords)

	o := Optimize("", "", Options{})
	require.NotNil(t, o)
	assert.NotNil(t, o.Analysis)
	assert.NotNil(t, o.Document.Sections)
}

func TestAnalyze_Deterministic(t *testing.T) {
	opts := Options{RefYear: 2026}
	first := Analyze(sampleResume, sampleJD, opts)
	for range 3 {
		assert.Equal(t, first, Analyze(sampleResume, sampleJD, opts))
	}
}

func TestAnalyze_AddingKeywordNeverLowersSkillsMatch(t *testing.T) {
	opts := Options{RefYear: 2026}
	resume := analystResume
	prev := Analyze(resume, analystJD, opts).Scores.SkillsMatch
	for _, add := range []string{" SQL", " Cloud", " Infrastructure", " Years of experience."} {
		resume += add
		got := Analyze(resume, analystJD, opts).Scores.SkillsMatch
		assert.GreaterOrEqual(t, got, prev, "after adding %q", add)
		prev = got
	}
}

func TestAnalyze_ScoresInRange(t *testing.T) {
	r := Analyze(sampleResume, sampleJD, Options{RefYear: 2026})
	s := r.Scores
	for _, v := range []int{s.SkillsMatch, s.ExperienceMatch, s.EducationMatch, s.IndustryFit,
		s.KeywordDensity, s.FormatCompatibility, s.ContentRelevance, s.OverallCompatibility} {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
	for _, sec := range []SectionResult{r.Sections.Profile, r.Sections.Skills, r.Sections.Experience,
		r.Sections.Education, r.Sections.Achievements} {
		assert.GreaterOrEqual(t, sec.Score, 0)
		assert.LessOrEqual(t, sec.Score, 100)
		assert.NotEmpty(t, sec.Feedback)
	}
}

func TestAnalyze_TruncatesInput(t *testing.T) {
	resume := "python kubernetes terraform"
	r := Analyze(resume, analystJD, Options{MaxInputChars: 10})
	assert.Equal(t, []string{"Python", "Kub"}, r.ResumeKeywords)
}

type mapCache struct {
	mu   sync.Mutex
	m    map[string]*AnalysisResult
	sets int
}

func (c *mapCache) Get(_ context.Context, id string) (*AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.m[id]
	return r, ok
}

func (c *mapCache) Set(_ context.Context, id string, r *AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[id] = r
	c.sets++
}

func TestAnalyzeCached(t *testing.T) {
	ctx := context.Background()
	cache := &mapCache{m: map[string]*AnalysisResult{}}
	opts := Options{RefYear: 2026}

	first := AnalyzeCached(ctx, cache, "doc-1", analystResume, analystJD, opts)
	require.NotNil(t, first)
	assert.Equal(t, "doc-1", first.DocumentID)
	assert.Equal(t, 1, cache.sets)

	// a cache hit ignores the new texts
	second := AnalyzeCached(ctx, cache, "doc-1", "other", "texts", opts)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.sets)

	uncached := AnalyzeCached(ctx, cache, "", analystResume, analystJD, opts)
	assert.Empty(t, uncached.DocumentID)
	assert.Equal(t, 1, cache.sets)

	noCache := AnalyzeCached(ctx, nil, "doc-2", analystResume, analystJD, opts)
	assert.Equal(t, "doc-2", noCache.DocumentID)
}

func TestOptimize(t *testing.T) {
	o := Optimize(sampleResume, sampleJD, Options{RefYear: 2026})
	require.NotNil(t, o)
	require.NotNil(t, o.Analysis)

	assert.True(t, strings.HasPrefix(o.OptimizedText, "PROFILE:\n"))
	assert.Equal(t, RenderText(o.Document), o.OptimizedText)
	assert.Equal(t, Analyze(sampleResume, sampleJD, Options{RefYear: 2026}), o.Analysis)
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name, resume, jd string
		wantErr          bool
	}{
		{"both present", "resume", "jd", false},
		{"empty resume", "", "jd", true},
		{"blank job description", "resume", "  \n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputs(tt.resume, tt.jd)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}
