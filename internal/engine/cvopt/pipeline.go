package cvopt

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/anatolykoptev/go-kit/strutil"
)

// DefaultMaxInputChars caps each input text, in runes.
const DefaultMaxInputChars = 50000

// Options tune the pipeline. Zero values take the defaults.
type Options struct {
	TopN          int // job/résumé keywords kept (default 15)
	MaxInputChars int // per-text rune cap (default 50000)
	RefYear       int // year that "Present" resolves to (default: current year)
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	if o.MaxInputChars <= 0 {
		o.MaxInputChars = DefaultMaxInputChars
	}
	if o.RefYear <= 0 {
		o.RefYear = time.Now().Year()
	}
	return o
}

// AnalysisCache maps a document ID to a finished analysis. The pipeline holds no
// cache of its own; callers supply one.
type AnalysisCache interface {
	Get(ctx context.Context, documentID string) (*AnalysisResult, bool)
	Set(ctx context.Context, documentID string, result *AnalysisResult)
}

type analysis struct {
	jd       string
	jobKW    []string
	sections Sections
	result   *AnalysisResult
}

// Analyze runs keyword extraction, segmentation, scoring, matching and the
// narrative over one résumé/job description pair.
func Analyze(resumeText, jdText string, opts Options) *AnalysisResult {
	return analyze(resumeText, jdText, opts.withDefaults()).result
}

// AnalyzeCached returns the cached analysis for documentID when present, otherwise
// runs Analyze and stores the result. An empty documentID bypasses the cache.
func AnalyzeCached(ctx context.Context, cache AnalysisCache, documentID, resumeText, jdText string, opts Options) *AnalysisResult {
	useCache := cache != nil && documentID != ""
	if useCache {
		if r, ok := cache.Get(ctx, documentID); ok {
			return r
		}
	}
	r := Analyze(resumeText, jdText, opts)
	r.DocumentID = documentID
	if useCache {
		cache.Set(ctx, documentID, r)
	}
	return r
}

// Optimize analyzes the pair and synthesizes the job-optimized résumé.
func Optimize(resumeText, jdText string, opts Options) *OptimizeResult {
	opts = opts.withDefaults()
	a := analyze(resumeText, jdText, opts)
	syn := Synthesize(a.sections, a.jobKW, a.jd, opts)
	return &OptimizeResult{
		OptimizedText: syn.OptimizedText,
		Document:      syn.Document,
		Analysis:      a.result,
	}
}

func analyze(resumeText, jdText string, opts Options) analysis {
	resume := capInput(resumeText, opts.MaxInputChars)
	jd := capInput(jdText, opts.MaxInputChars)

	jobKW := keywordTerms(rankKeywords(jd, true, opts.TopN))
	resumeTop := keywordTerms(rankKeywords(resume, false, opts.TopN))
	// scoring sees the whole résumé vocabulary so adding a word never drops a match
	resumeAll := keywordTerms(rankKeywords(resume, false, 0))

	sec := Segment(resume)
	scores := scoreSections(resume, jd, sec, resumeAll, jobKW, opts)
	matched, missing := MatchKeywords(jobKW, resume, sec)
	secResults := AnalyzeSections(sec, jobKW, jd)
	n := Recommend(matched, missing, scores, secResults)

	return analysis{
		jd:       jd,
		jobKW:    jobKW,
		sections: sec,
		result: &AnalysisResult{
			Scores:               scores,
			MatchedKeywords:      matched,
			MissingKeywords:      missing,
			Recommendations:      n.Recommendations,
			SkillGap:             n.SkillGap,
			DetailedAnalysis:     n.DetailedAnalysis,
			ImprovementPotential: n.ImprovementPotential,
			Sections:             secResults,
			JobKeywords:          jobKW,
			ResumeKeywords:       resumeTop,
		},
	}
}

func capInput(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	slog.Debug("cvopt: input truncated", slog.Int("runes", utf8.RuneCountInString(s)), slog.Int("limit", limit))
	return strutil.TruncateWith(s, limit, "")
}
