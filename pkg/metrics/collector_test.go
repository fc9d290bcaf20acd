package metrics_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/reqio"
	"github.com/aretw0/reqio/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_ObservesRequest(t *testing.T) {
	ctx := context.Background()
	collector := metrics.New("greeter")
	req := reqio.New(strings.NewReader("a\nb\nc\n"), io.Discard, reqio.WithObserver(collector))

	for {
		line, err := req.In.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		require.NoError(t, req.Out.WriteLine(ctx, line))
	}
	require.NoError(t, req.Out.Flush(ctx))
	require.NoError(t, req.Close())

	expected := `
# HELP reqio_lines_read_total Lines read from the request input.
# TYPE reqio_lines_read_total counter
reqio_lines_read_total{script="greeter"} 3
# HELP reqio_lines_written_total Lines queued on the request output.
# TYPE reqio_lines_written_total counter
reqio_lines_written_total{script="greeter"} 3
# HELP reqio_flushes_total Flushes of the request output.
# TYPE reqio_flushes_total counter
reqio_flushes_total{script="greeter"} 2
# HELP reqio_end_of_stream_total Times the request input reached end of stream.
# TYPE reqio_end_of_stream_total counter
reqio_end_of_stream_total{script="greeter"} 1
`
	err := testutil.GatherAndCompare(collector.Gatherer(), strings.NewReader(expected))
	assert.NoError(t, err)
}

func TestCollector_WriteTextfile(t *testing.T) {
	collector := metrics.New("count")
	collector.LineWritten()
	collector.LineWritten()

	path := filepath.Join(t.TempDir(), "reqio.prom")
	require.NoError(t, collector.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `reqio_lines_written_total{script="count"} 2`)
}
