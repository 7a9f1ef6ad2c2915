// Package metrics exposes Prometheus metrics describing ranking runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric names as constants for consistency.
const (
	MetricRunsTotal           = "mentionrank_runs_total"
	MetricPostsTotal          = "mentionrank_posts_total"
	MetricSkippedPostsTotal   = "mentionrank_skipped_posts_total"
	MetricMalformedLinesTotal = "mentionrank_malformed_lines_total"
	MetricVertices            = "mentionrank_graph_vertices"
	MetricEdges               = "mentionrank_graph_edges"
	MetricRounds              = "mentionrank_rank_rounds"
	MetricConverged           = "mentionrank_rank_converged"
	MetricRankDuration        = "mentionrank_rank_duration_seconds"
	MetricLastRunTimestamp    = "mentionrank_last_run_timestamp"
)

// Metrics contains Prometheus collectors for ranking runs.
// All operations are thread-safe.
type Metrics struct {
	runsTotal           prometheus.Counter
	postsTotal          prometheus.Counter
	skippedPostsTotal   prometheus.Counter
	malformedLinesTotal prometheus.Counter
	vertices            prometheus.Gauge
	edges               prometheus.Gauge
	rounds              prometheus.Gauge
	converged           prometheus.Gauge
	rankDuration        prometheus.Histogram
	lastRunTimestamp    prometheus.Gauge
}

// Run is the data recorded for one completed ranking run.
type Run struct {
	Posts          int
	SkippedPosts   int
	MalformedLines int
	Vertices       int
	Edges          int
	Rounds         int
	Converged      bool
	RankDuration   time.Duration
	Finished       time.Time
}

// New creates a Metrics instance. The collectors are not registered; call
// Register.
func New() *Metrics {
	return &Metrics{
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRunsTotal,
			Help: "Total number of completed ranking runs",
		}),
		postsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricPostsTotal,
			Help: "Total number of posts consumed by the graph builder",
		}),
		skippedPostsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricSkippedPostsTotal,
			Help: "Total number of posts skipped for missing an author",
		}),
		malformedLinesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricMalformedLinesTotal,
			Help: "Total number of input lines that were not valid JSON",
		}),
		vertices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricVertices,
			Help: "Number of users in the last mention graph",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricEdges,
			Help: "Number of distinct mentions in the last mention graph",
		}),
		rounds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricRounds,
			Help: "Number of rounds executed by the last ranking",
		}),
		converged: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricConverged,
			Help: "1 if the last ranking converged, 0 if the iteration cap stopped it",
		}),
		rankDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRankDuration,
			Help:    "Histogram of ranking duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		lastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastRunTimestamp,
			Help: "Unix timestamp of the last completed ranking run",
		}),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all Prometheus collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.runsTotal,
		m.postsTotal,
		m.skippedPostsTotal,
		m.malformedLinesTotal,
		m.vertices,
		m.edges,
		m.rounds,
		m.converged,
		m.rankDuration,
		m.lastRunTimestamp,
	}
}

// Observe records a completed run.
func (m *Metrics) Observe(r Run) {
	m.runsTotal.Inc()
	m.postsTotal.Add(float64(r.Posts))
	m.skippedPostsTotal.Add(float64(r.SkippedPosts))
	m.malformedLinesTotal.Add(float64(r.MalformedLines))
	m.vertices.Set(float64(r.Vertices))
	m.edges.Set(float64(r.Edges))
	m.rounds.Set(float64(r.Rounds))
	if r.Converged {
		m.converged.Set(1)
	} else {
		m.converged.Set(0)
	}
	m.rankDuration.Observe(r.RankDuration.Seconds())
	m.lastRunTimestamp.Set(float64(r.Finished.Unix()))
}

// Handler creates an HTTP handler for the Prometheus metrics endpoint backed
// by the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
