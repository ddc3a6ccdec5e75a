// Package observability holds the service's Prometheus collectors.
package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Selection outcomes.
const (
	OutcomeExact            = "exact"
	OutcomeDurationRelaxed  = "duration_relaxed"
	OutcomeExclusionRelaxed = "exclusion_relaxed"
	OutcomeNotFound         = "not_found"
)

// UnknownMode is the mode label for modes the catalog does not contain.
const UnknownMode = "unknown"

var (
	activitySelections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "littlewins",
		Subsystem: "activities",
		Name:      "selections_total",
		Help:      "Activity selections by mode and which fallback, if any, was needed.",
	}, []string{"mode", "outcome"})
	sessionsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "littlewins",
		Subsystem: "sessions",
		Name:      "recorded_total",
		Help:      "Completed sessions recorded, by mode and duration in minutes.",
	}, []string{"mode", "duration"})
	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "littlewins",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	prometheus.MustRegister(activitySelections, sessionsRecorded, httpRequestDuration)
}

// RecordSelection counts one activity selection. Not-found selections are
// counted under UnknownMode since their mode is arbitrary caller input.
func RecordSelection(mode, outcome string) {
	if outcome == OutcomeNotFound {
		mode = UnknownMode
	}
	activitySelections.WithLabelValues(mode, outcome).Inc()
}

// RecordSession counts one recorded session. Callers pass UnknownMode for
// modes outside the catalog.
func RecordSession(mode string, durationMin int) {
	sessionsRecorded.WithLabelValues(mode, strconv.Itoa(durationMin)).Inc()
}

// GinMiddleware observes request latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
