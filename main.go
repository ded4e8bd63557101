// go_cvmatch — résumé vs job description analysis MCP server.
//
// Exposes seven MCP tools: cv_keywords, cv_sections, cv_score, cv_analyze,
// cv_optimize, cv_analysis_get, cv_history_list.
// Analysis is rule-based and deterministic; results are cached (memory + Redis)
// and persisted to a history database (SQLite by default, Postgres when set).
package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_cvmatch/internal/engine"
	"github.com/anatolykoptev/go_cvmatch/internal/engine/history"
	"github.com/anatolykoptev/go_cvmatch/internal/jobserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8893")
)

func main() {
	initEngine()

	slog.Info("starting go_cvmatch",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_cvmatch",
		Version: version,
	}, nil)

	jobserver.RegisterTools(server)
	slog.Info("tools registered", slog.Int("count", jobserver.ToolCount))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_cvmatch",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		RedisURL:             env.Str("REDIS_URL", ""),
		CacheTTL:             env.Duration("CACHE_TTL", 24*time.Hour),
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		DatabaseURL:          env.Str("DATABASE_URL", ""),
		HistoryPath:          env.Str("HISTORY_PATH", ""),
		MaxInputChars:        env.Int("MAX_INPUT_CHARS", 50000),
		TopKeywords:          env.Int("TOP_KEYWORDS", 15),
		RefYear:              env.Int("REF_YEAR", 0),
	}
	engine.Init(c)

	ctx := context.Background()
	engine.InitCache(ctx, c.RedisURL, c.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)

	// History DB (Postgres when DATABASE_URL is set, SQLite file otherwise)
	store, err := history.Open(ctx, c.DatabaseURL, c.HistoryPath)
	if err != nil {
		slog.Warn("history init failed, running without history", slog.Any("error", err))
		return
	}
	jobserver.SetHistory(store)
	slog.Info("history initialized", slog.Bool("postgres", c.DatabaseURL != ""))
}
