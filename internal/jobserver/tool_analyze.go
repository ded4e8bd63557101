package jobserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_cvmatch/internal/engine"
	"github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"
	"github.com/anatolykoptev/go_cvmatch/internal/engine/history"
	"github.com/anatolykoptev/go_cvmatch/internal/toolutil"
)

func registerAnalyze(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cv_analyze",
		Description: "Full résumé vs job description analysis: dimensional scores, matched keywords (relevance, frequency, where they appear), missing keywords (importance, where to add them), per-section feedback, up to 8 recommendations, a skill-gap summary and a narrative. Results are cached by document_id and saved to history; fetch them again with cv_analysis_get.",
		Annotations: &mcp.ToolAnnotations{},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CVAnalyzeInput) (*mcp.CallToolResult, CVAnalyzeOutput, error) {
		out, err := analyzeResume(ctx, input)
		return nil, out, err
	})
}

func registerAnalysisGet(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cv_analysis_get",
		Description: "Fetch a previous cv_analyze result by document_id. Looks in the analysis cache first, then in the history database.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CVAnalysisGetInput) (*mcp.CallToolResult, CVAnalyzeOutput, error) {
		out, err := getAnalysis(ctx, input.DocumentID)
		return nil, out, err
	})
}

func analyzeResume(ctx context.Context, input CVAnalyzeInput) (CVAnalyzeOutput, error) {
	resume, jd, err := resolvePair(input.Resume, input.ResumePath, input.JobDescription, input.JobDescriptionPath)
	if err != nil {
		return CVAnalyzeOutput{}, err
	}
	id := toolutil.DocumentID(input.DocumentID, resume, jd)
	title := strings.TrimSpace(input.JobTitle)
	if title == "" {
		title = toolutil.GuessJobTitle(jd)
	}

	source := "cache"
	var result *cvopt.AnalysisResult
	err = engine.TrackOperation(ctx, "cv_analyze", func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result = cvopt.AnalyzeCached(ctx, cacheAdapter{computed: func() { source = "computed" }}, id, resume, jd, engine.PipelineOptions())
		return nil
	})
	if err != nil {
		return CVAnalyzeOutput{}, err
	}
	if source == "computed" {
		engine.IncrAnalyses()
		saveHistory(ctx, result, title)
	}

	return CVAnalyzeOutput{
		DocumentID: id,
		JobTitle:   title,
		Source:     source,
		Analysis:   *result,
		Summary:    analysisSummary(result),
	}, nil
}

// cacheAdapter wraps the engine cache and reports when the pipeline had to run.
type cacheAdapter struct {
	computed func()
}

func (c cacheAdapter) Get(ctx context.Context, id string) (*cvopt.AnalysisResult, bool) {
	return engine.AnalysisCache{}.Get(ctx, id)
}

func (c cacheAdapter) Set(ctx context.Context, id string, r *cvopt.AnalysisResult) {
	c.computed()
	engine.AnalysisCache{}.Set(ctx, id, r)
}

func saveHistory(ctx context.Context, r *cvopt.AnalysisResult, title string) {
	if historyStore == nil {
		return
	}
	rec, err := history.NewRecord(r, title)
	if err == nil {
		_, err = historyStore.Save(ctx, rec)
	}
	engine.IncrHistoryWrite(err)
	if err != nil {
		slog.Warn("cv_analyze: history save failed", slog.String("document_id", r.DocumentID), slog.Any("error", err))
	}
}

func getAnalysis(ctx context.Context, documentID string) (CVAnalyzeOutput, error) {
	documentID = strings.TrimSpace(documentID)
	if documentID == "" {
		return CVAnalyzeOutput{}, cvopt.InvalidArgumentf("document_id is required")
	}
	if r, ok := (engine.AnalysisCache{}).Get(ctx, documentID); ok {
		return CVAnalyzeOutput{DocumentID: documentID, Source: "cache", Analysis: *r, Summary: analysisSummary(r)}, nil
	}
	if historyStore == nil {
		return CVAnalyzeOutput{}, fmt.Errorf("analysis %q not found", documentID)
	}
	rec, err := historyStore.Get(ctx, documentID)
	if errors.Is(err, history.ErrNotFound) {
		return CVAnalyzeOutput{}, fmt.Errorf("analysis %q not found", documentID)
	}
	if err != nil {
		return CVAnalyzeOutput{}, err
	}
	r, err := rec.Analysis()
	if err != nil {
		return CVAnalyzeOutput{}, err
	}
	engine.AnalysisCache{}.Set(ctx, documentID, r)
	return CVAnalyzeOutput{
		DocumentID: documentID,
		JobTitle:   rec.JobTitle,
		Source:     "history",
		Analysis:   *r,
		Summary:    analysisSummary(r),
	}, nil
}

func analysisSummary(r *cvopt.AnalysisResult) string {
	return fmt.Sprintf("Overall compatibility %d/100 (skills %d). %d of %d job keywords matched, %d missing.",
		r.Scores.OverallCompatibility, r.Scores.SkillsMatch,
		len(r.MatchedKeywords), len(r.JobKeywords), len(r.MissingKeywords))
}
