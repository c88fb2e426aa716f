// internal/common/observability/metrics_test.go
package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_SpansAndMetrics(t *testing.T) {
	var traces bytes.Buffer
	reg := promclient.NewRegistry()

	o, err := New(Options{
		ServiceName:    "career-workers",
		ServiceVersion: "test",
		TraceStdout:    true,
		TraceWriter:    &traces,
		SampleRatio:    1,
		Registerer:     reg,
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, span := o.StartJobSpan(ctx, "generate-career-matches", 42)
	EndJobSpan(span, errors.New("CATALOG_EMPTY"))

	o.RecordJob(ctx, "generate-career-matches", "failed", 15*time.Millisecond)
	o.RecordMatches(ctx, 6)

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "jobs_processed")
	assert.Contains(t, joined, "career_matches_returned")

	require.NoError(t, o.Shutdown(ctx))
	out := traces.String()
	assert.Contains(t, out, `"Name":"generate-career-matches"`)
	assert.Contains(t, out, "CATALOG_EMPTY")
}

func TestObservability_NoTraceExport(t *testing.T) {
	o, err := New(Options{ServiceName: "svc", SampleRatio: 0, Registerer: promclient.NewRegistry()})
	require.NoError(t, err)

	_, span := o.StartJobSpan(context.Background(), "lookup-locations", 1)
	assert.False(t, span.IsRecording())
	EndJobSpan(span, nil)
	assert.NoError(t, o.Shutdown(context.Background()))
}
