package jobserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_cvmatch/internal/engine/history"
)

var historyStore history.Store

// SetHistory sets the store analyses are persisted to. nil disables history.
func SetHistory(s history.Store) { historyStore = s }

// RegisterTools registers all résumé analysis tools on the given MCP server:
// cv_keywords, cv_sections, cv_score, cv_analyze, cv_optimize, cv_analysis_get,
// cv_history_list.
func RegisterTools(server *mcp.Server) {
	registerKeywords(server)
	registerSections(server)
	registerScore(server)
	registerAnalyze(server)
	registerOptimize(server)
	registerAnalysisGet(server)
	registerHistoryList(server)
}

// ToolCount is the number of tools RegisterTools adds.
const ToolCount = 7
