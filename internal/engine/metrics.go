package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// registry is private so tests and the text endpoint see only engine counters.
var registry = prometheus.NewRegistry()

var (
	analysesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cvmatch_analyses_total",
		Help: "Résumé analyses computed (cache misses included, hits excluded).",
	})
	optimizationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cvmatch_optimizations_total",
		Help: "Optimized résumés synthesized.",
	})
	cacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cvmatch_cache_requests_total",
		Help: "Cache lookups by outcome.",
	}, []string{"outcome"})
	historyWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cvmatch_history_writes_total",
		Help: "Analysis history writes by outcome.",
	}, []string{"outcome"})
	ingestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cvmatch_ingest_total",
		Help: "Documents converted to text by format.",
	}, []string{"format"})
)

func init() {
	registry.MustRegister(analysesTotal, optimizationsTotal, cacheRequests, historyWrites, ingestTotal)
}

// IncrAnalyses counts one computed analysis.
func IncrAnalyses() { analysesTotal.Inc() }

// IncrOptimizations counts one synthesized résumé.
func IncrOptimizations() { optimizationsTotal.Inc() }

// IncrIngest counts one converted document of the given format ("pdf", "docx", ...).
func IncrIngest(format string) { ingestTotal.WithLabelValues(format).Inc() }

// IncrHistoryWrite counts a history write; err == nil counts as "ok".
func IncrHistoryWrite(err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	historyWrites.WithLabelValues(outcome).Inc()
}

func incrCache(hit bool) {
	if hit {
		cacheRequests.WithLabelValues("hit").Inc()
		return
	}
	cacheRequests.WithLabelValues("miss").Inc()
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint:
// one "name{labels} value" line per series, sorted.
func FormatMetrics() string {
	families, err := registry.Gather()
	if err != nil {
		slog.Warn("metrics: gather failed", slog.Any("error", err))
	}
	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
		}
	}
	sort.Strings(lines)
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}
	return sb.String()
}

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 2*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
