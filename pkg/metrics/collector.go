// Package metrics counts request I/O activity with Prometheus counters.
//
// The scripts are short-lived processes, so nothing is served over HTTP.
// Instead the registry is written once at exit in the text exposition
// format, ready for the node exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "reqio"

// Collector implements reqio.Observer on its own registry.
type Collector struct {
	registry     *prometheus.Registry
	linesRead    prometheus.Counter
	linesWritten prometheus.Counter
	flushes      prometheus.Counter
	endOfStream  prometheus.Counter
}

// New creates a Collector. The script label is attached to every series.
func New(script string) *Collector {
	labels := prometheus.Labels{"script": script}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	c := &Collector{
		registry:     prometheus.NewRegistry(),
		linesRead:    counter("lines_read_total", "Lines read from the request input."),
		linesWritten: counter("lines_written_total", "Lines queued on the request output."),
		flushes:      counter("flushes_total", "Flushes of the request output."),
		endOfStream:  counter("end_of_stream_total", "Times the request input reached end of stream."),
	}
	c.registry.MustRegister(c.linesRead, c.linesWritten, c.flushes, c.endOfStream)
	return c
}

func (c *Collector) LineRead()    { c.linesRead.Inc() }
func (c *Collector) LineWritten() { c.linesWritten.Inc() }
func (c *Collector) Flushed()     { c.flushes.Inc() }
func (c *Collector) EndOfStream() { c.endOfStream.Inc() }

// Gatherer exposes the registry.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// WriteTextfile atomically writes the current values to path.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
