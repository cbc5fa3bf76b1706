// Package metrics records chat activity in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"chatsim/src/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chatsim"

// Recorder holds the chat metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	conversationsCreated prometheus.Counter
	conversationsDeleted prometheus.Counter
	messages             *prometheus.CounterVec
	repliesFailed        prometheus.Counter
	replyLatency         prometheus.Histogram
	pendingReplies       prometheus.Gauge
}

// Config configures the recorder.
type Config struct {
	// Registry to use (if nil, creates a new one)
	Registry *prometheus.Registry

	// Buckets for the reply latency histogram (in seconds)
	LatencyBuckets []float64
}

// DefaultConfig returns default metrics configuration.
func DefaultConfig() Config {
	return Config{
		LatencyBuckets: []float64{0.1, 0.5, 1, 1.25, 1.5, 1.75, 2, 3, 5},
	}
}

// NewRecorder creates a recorder and registers its collectors.
func NewRecorder(cfg Config) *Recorder {
	if len(cfg.LatencyBuckets) == 0 {
		cfg.LatencyBuckets = DefaultConfig().LatencyBuckets
	}
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &Recorder{registry: registry}

	r.conversationsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversations_created_total",
		Help:      "Total number of conversations created",
	})
	r.conversationsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conversations_deleted_total",
		Help:      "Total number of conversations deleted",
	})
	r.messages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Total number of messages appended, by sender",
		},
		[]string{"sender"},
	)
	r.repliesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "replies_failed_total",
		Help:      "Total number of replies the responder failed to produce",
	})
	r.replyLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reply_latency_seconds",
		Help:      "Time the responder took to produce a reply",
		Buckets:   cfg.LatencyBuckets,
	})
	r.pendingReplies = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pending_replies",
		Help:      "Number of replies currently in flight",
	})

	registry.MustRegister(
		r.conversationsCreated,
		r.conversationsDeleted,
		r.messages,
		r.repliesFailed,
		r.replyLatency,
		r.pendingReplies,
	)
	return r
}

func (r *Recorder) ConversationCreated() {
	if r == nil {
		return
	}
	r.conversationsCreated.Inc()
}

func (r *Recorder) ConversationDeleted() {
	if r == nil {
		return
	}
	r.conversationsDeleted.Inc()
}

func (r *Recorder) MessageAppended(sender models.Sender) {
	if r == nil {
		return
	}
	r.messages.WithLabelValues(string(sender)).Inc()
}

// ReplyStarted marks a reply as in flight.
func (r *Recorder) ReplyStarted() {
	if r == nil {
		return
	}
	r.pendingReplies.Inc()
}

// ReplyFinished records the outcome of a reply that was started with ReplyStarted.
func (r *Recorder) ReplyFinished(latency time.Duration, err error) {
	if r == nil {
		return
	}
	r.pendingReplies.Dec()
	if err != nil {
		r.repliesFailed.Inc()
		return
	}
	r.replyLatency.Observe(latency.Seconds())
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler returns an HTTP handler serving the recorder's metrics.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
