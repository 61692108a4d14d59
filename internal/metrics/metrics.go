// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector gathers domain and HTTP metrics. It implements app.Metrics.
type Collector struct {
	registry *prometheus.Registry

	postsCreated    prometheus.Counter
	dailyLimitHits  prometheus.Counter
	likesToggled    prometheus.Counter
	commentsAdded   prometheus.Counter
	accountsCreated prometheus.Counter

	httpStatus     *prometheus.CounterVec
	requestLatency prometheus.Histogram
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		postsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promptpic_posts_created_total",
			Help: "Posts successfully created.",
		}),
		dailyLimitHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promptpic_daily_limit_rejections_total",
			Help: "Post creations rejected by the one-per-day rule.",
		}),
		likesToggled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promptpic_likes_toggled_total",
			Help: "Like toggles applied.",
		}),
		commentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promptpic_comments_added_total",
			Help: "Comments appended to posts.",
		}),
		accountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "promptpic_accounts_created_total",
			Help: "Device accounts created.",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "promptpic_http_status_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "promptpic_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(
		c.postsCreated, c.dailyLimitHits, c.likesToggled, c.commentsAdded,
		c.accountsCreated, c.httpStatus, c.requestLatency,
	)
	return c
}

// PostCreated counts a successful post creation.
func (c *Collector) PostCreated() { c.postsCreated.Inc() }

// DailyLimitHit counts a post rejected by the daily limit.
func (c *Collector) DailyLimitHit() { c.dailyLimitHits.Inc() }

// LikeToggled counts an applied like toggle.
func (c *Collector) LikeToggled() { c.likesToggled.Inc() }

// CommentAdded counts an appended comment.
func (c *Collector) CommentAdded() { c.commentsAdded.Inc() }

// AccountCreated counts a created device account.
func (c *Collector) AccountCreated() { c.accountsCreated.Inc() }

// RecordHTTPStatus counts a response by status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency observes one request's duration.
func (c *Collector) RecordRequestLatency(d time.Duration) {
	c.requestLatency.Observe(d.Seconds())
}

// Handler exposes the registry in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
