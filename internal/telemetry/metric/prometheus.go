package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/catchdb/catchdb-go/pkg/catchdb"
)

const namespace = "catchdb_client"

// OutcomeOK labels a round trip that completed without error.
const OutcomeOK = "ok"

// Registry holds the client metrics and the Prometheus registry they are
// registered with.
type Registry struct {
	registry *prometheus.Registry

	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	BytesSent       prometheus.Counter
	BytesReceived   prometheus.Counter
	Connections     prometheus.Gauge
}

var _ catchdb.Observer = (*Registry)(nil)

// NewRegistry creates a registry with the client metrics plus the Go and
// process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Round trips by command and outcome.",
		}, []string{"command", "outcome"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Round trip latency by command.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"command"}),
		BytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_sent_total",
			Help:      "Request bytes written.",
		}),
		BytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Reply bytes read.",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open server connections.",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.CommandsTotal,
		r.CommandDuration,
		r.BytesSent,
		r.BytesReceived,
		r.Connections,
	)
	return r
}

// ObserveCommand records one round trip.
func (r *Registry) ObserveCommand(command string, d time.Duration, bytesOut, bytesIn int, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = catchdb.ErrorCode(err)
		if outcome == "" {
			outcome = "error"
		}
	}
	r.CommandsTotal.WithLabelValues(command, outcome).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
	r.BytesSent.Add(float64(bytesOut))
	r.BytesReceived.Add(float64(bytesIn))
}

// Gatherer returns the underlying Prometheus gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
