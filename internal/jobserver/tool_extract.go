package jobserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_cvmatch/internal/engine"
	"github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"
	"github.com/anatolykoptev/go_cvmatch/internal/toolutil"
)

func registerKeywords(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cv_keywords",
		Description: "Extract the most relevant keywords from a résumé or job description. Ranks single words and multi-word requirement phrases (\"experience with distributed systems\") by weighted frequency, drops stop words and numbers. For job descriptions, phrases after requirement leads (experience with, knowledge of, familiarity with) are mined and weighted up. Returns keywords with rank (1 = most relevant) and source (token or phrase).",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CVKeywordsInput) (*mcp.CallToolResult, CVKeywordsOutput, error) {
		text, err := toolutil.ResolveText(input.Text, input.Path, "text", engine.Cfg.MaxInputChars)
		if err != nil {
			return nil, CVKeywordsOutput{}, err
		}
		topN := input.TopN
		if topN <= 0 {
			topN = engine.Cfg.TopKeywords
		}
		kw := cvopt.ExtractKeywordDetails(text, input.IsJobDescription, topN)
		return nil, CVKeywordsOutput{Keywords: kw, Count: len(kw)}, nil
	})
}

func registerSections(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cv_sections",
		Description: "Split a résumé into structured sections: profile, technical and professional skills, experience (title, company, dates, bullets), education (degree, institution, year, GPA, courses), achievements, career goals, languages with normalized proficiency, and contact details. Missing sections come back empty.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CVSectionsInput) (*mcp.CallToolResult, CVSectionsOutput, error) {
		resume, err := toolutil.ResolveText(input.Resume, input.ResumePath, "resume", engine.Cfg.MaxInputChars)
		if err != nil {
			return nil, CVSectionsOutput{}, err
		}
		sec := cvopt.Segment(resume)
		summary := fmt.Sprintf("Found %d experience entries, %d education entries, %d technical skills, %d languages.",
			len(sec.Experience), len(sec.Education), len(sec.TechnicalSkills), len(sec.Languages))
		return nil, CVSectionsOutput{Sections: sec, Summary: summary}, nil
	})
}

func registerScore(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cv_score",
		Description: "Score a résumé against a job description on seven 0–100 dimensions (skills match, experience match, education match, industry fit, keyword density, ATS format compatibility, content relevance) plus a weighted overall compatibility score. Deterministic: the same inputs always give the same scores.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CVPairInput) (*mcp.CallToolResult, CVScoreOutput, error) {
		resume, jd, err := resolvePair(input.Resume, input.ResumePath, input.JobDescription, input.JobDescriptionPath)
		if err != nil {
			return nil, CVScoreOutput{}, err
		}
		r := cvopt.Analyze(resume, jd, engine.PipelineOptions())
		return nil, CVScoreOutput{
			Scores:         r.Scores,
			JobKeywords:    r.JobKeywords,
			ResumeKeywords: r.ResumeKeywords,
		}, nil
	})
}

// resolvePair loads the résumé and job description, inline text first.
func resolvePair(resume, resumePath, jd, jdPath string) (string, string, error) {
	limit := engine.Cfg.MaxInputChars
	r, err := toolutil.ResolveText(resume, resumePath, "resume", limit)
	if err != nil {
		return "", "", err
	}
	j, err := toolutil.ResolveText(jd, jdPath, "job_description", limit)
	if err != nil {
		return "", "", err
	}
	return r, j, nil
}
