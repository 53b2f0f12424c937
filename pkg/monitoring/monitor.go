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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// GradingTotal outcome 取值 passed / failed / rejected / error
	GradingTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "grading_runs_total",
			Help: "Total number of attempt grading runs by outcome",
		},
		[]string{"outcome"},
	)

	ScoreDistribution = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grading_score_percent",
			Help:    "Distribution of graded attempt scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	SweepGraded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "grading_sweep_graded_total",
			Help: "Attempts graded by the background sweep",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDuration, GradingTotal, ScoreDistribution, SweepGraded)
	})
}

func ObserveGrade(score int, passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	GradingTotal.WithLabelValues(outcome).Inc()
	ScoreDistribution.Observe(float64(score))
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
