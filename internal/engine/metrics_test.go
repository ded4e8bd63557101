package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIncrHistoryWrite(t *testing.T) {
	ok0 := testutil.ToFloat64(historyWrites.WithLabelValues("ok"))
	bad0 := testutil.ToFloat64(historyWrites.WithLabelValues("error"))

	IncrHistoryWrite(nil)
	IncrHistoryWrite(nil)
	IncrHistoryWrite(errors.New("disk full"))

	if got := testutil.ToFloat64(historyWrites.WithLabelValues("ok")) - ok0; got != 2 {
		t.Errorf("ok writes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(historyWrites.WithLabelValues("error")) - bad0; got != 1 {
		t.Errorf("failed writes = %v, want 1", got)
	}
}

func TestFormatMetrics(t *testing.T) {
	IncrAnalyses()
	IncrOptimizations()
	IncrIngest("pdf")

	out := FormatMetrics()
	for _, want := range []string{
		"cvmatch_analyses_total ",
		"cvmatch_optimizations_total ",
		`cvmatch_ingest_total{format="pdf"} `,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatMetrics() missing %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if len(strings.Fields(line)) != 2 {
			t.Errorf("malformed line %q", line)
		}
	}
}
