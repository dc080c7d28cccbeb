package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)
)

// 业务指标
var (
	AttemptsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_attempts_started_total",
			Help: "Attempts started, labelled by whether an in-progress attempt was resumed",
		},
		[]string{"resumed"},
	)

	AttemptsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exam_attempts_submitted_total",
			Help: "Attempts finished and scored",
		},
	)

	AttemptPercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exam_attempt_percentage",
			Help:    "Score percentage of finished attempts",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	AnswersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_answers_submitted_total",
			Help: "Answer submissions by outcome",
		},
		[]string{"outcome"},
	)

	MistakesAdded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mistake_ledger_added_total",
			Help: "Ledger entries added or reset, by source",
		},
		[]string{"source"},
	)

	RevisionReviews = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mistake_revision_reviews_total",
			Help: "Spaced repetition reviews by result",
		},
		[]string{"result"},
	)

	MasteryReached = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mistake_mastery_reached_total",
			Help: "Ledger entries that became mastered",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AttemptsStarted,
			AttemptsSubmitted,
			AttemptPercentage,
			AnswersSubmitted,
			MistakesAdded,
			RevisionReviews,
			MasteryReached,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
