package jobserver

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerHistoryList(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "cv_history_list",
		Description: "List saved cv_analyze results, newest first: document_id, job title, overall and skills scores, and when it was analyzed. Use cv_analysis_get with a document_id for the full analysis.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, req *mcp.CallToolRequest, input CVHistoryListInput) (*mcp.CallToolResult, CVHistoryListOutput, error) {
		out, err := listHistory(ctx, input.Limit)
		return nil, out, err
	})
}

func listHistory(ctx context.Context, limit int) (CVHistoryListOutput, error) {
	if historyStore == nil {
		return CVHistoryListOutput{}, errors.New("history is not configured")
	}
	recs, err := historyStore.List(ctx, limit)
	if err != nil {
		return CVHistoryListOutput{}, err
	}
	items := make([]HistoryItem, 0, len(recs))
	for _, r := range recs {
		items = append(items, HistoryItem{
			ID:          r.ID,
			DocumentID:  r.DocumentID,
			JobTitle:    r.JobTitle,
			Overall:     r.Overall,
			SkillsMatch: r.SkillsMatch,
			AnalyzedAt:  r.AnalyzedAt.UTC().Format(time.RFC3339),
		})
	}
	return CVHistoryListOutput{Records: items, Count: len(items)}, nil
}
