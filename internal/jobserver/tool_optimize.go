package jobserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_cvmatch/internal/engine"
	"github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"
	"github.com/anatolykoptev/go_cvmatch/internal/toolutil"
)

func registerOptimize(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cv_optimize",
		Description: "Rewrite a résumé for a job description: profile and skills enriched with the job's keywords, achievements strengthened and ranked by relevance, education and languages reordered. Returns the optimized plain text, a structured document (contact info plus ordered sections) and the analysis it was built from. Only reorders and rewords what the résumé already says plus job keywords.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CVAnalyzeInput) (*mcp.CallToolResult, CVOptimizeOutput, error) {
		out, err := optimizeResume(ctx, input)
		return nil, out, err
	})
}

func optimizeResume(ctx context.Context, input CVAnalyzeInput) (CVOptimizeOutput, error) {
	resume, jd, err := resolvePair(input.Resume, input.ResumePath, input.JobDescription, input.JobDescriptionPath)
	if err != nil {
		return CVOptimizeOutput{}, err
	}
	id := toolutil.DocumentID(input.DocumentID, resume, jd)

	var res *cvopt.OptimizeResult
	err = engine.TrackOperation(ctx, "cv_optimize", func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res = cvopt.Optimize(resume, jd, engine.PipelineOptions())
		return nil
	})
	if err != nil {
		return CVOptimizeOutput{}, err
	}
	engine.IncrOptimizations()
	res.Analysis.DocumentID = id

	return CVOptimizeOutput{
		DocumentID:    id,
		OptimizedText: res.OptimizedText,
		Document:      res.Document,
		Analysis:      *res.Analysis,
		Summary: fmt.Sprintf("Optimized résumé with %d sections. Overall compatibility before optimization: %d/100.",
			len(res.Document.Sections), res.Analysis.Scores.OverallCompatibility),
	}, nil
}
