package engine

import (
	"time"

	"github.com/anatolykoptev/go_cvmatch/internal/engine/cvopt"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	RedisURL             string // empty = L1 cache only
	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	DatabaseURL          string // postgres DSN; empty = SQLite history at HistoryPath
	HistoryPath          string
	MaxInputChars        int
	TopKeywords          int
	RefYear              int // 0 = current year
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages and tool handlers.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	cfg = c
	Cfg = &cfg
}

// PipelineOptions maps the configuration onto cvopt options. Zero values fall
// back to the pipeline defaults.
func PipelineOptions() cvopt.Options {
	return cvopt.Options{
		TopN:          Cfg.TopKeywords,
		MaxInputChars: Cfg.MaxInputChars,
		RefYear:       Cfg.RefYear,
	}
}
