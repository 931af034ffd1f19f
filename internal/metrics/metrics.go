package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.DefaultRegisterer

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by path/method/code.",
		},
		[]string{"path", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by path/method/code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "code"},
	)

	scanEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scan_events_total",
			Help: "QR scan events by action and result with error label.",
		},
		[]string{"action", "result", "error"},
	)

	scanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scan_operation_duration_seconds",
			Help:    "Duration of scan operations by action and result.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"action", "result"},
	)

	checkedInTeams = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "checked_in_teams",
			Help: "Checked-in teams, maintained by the scan and admin-edit flows; team deletions are not reflected.",
		},
	)
)

func GinMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	code := strconv.Itoa(c.Writer.Status())
	path := c.FullPath()

	// unmatched routes 404 with an empty FullPath
	if path == "" {
		path = c.Request.URL.Path
	}

	if path == "/metrics" || strings.HasPrefix(path, "/debug/pprof/") {
		return
	}

	method := c.Request.Method

	httpRequests.WithLabelValues(path, method, code).Inc()
	httpDuration.WithLabelValues(path, method, code).Observe(time.Since(start).Seconds())
}

func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func ObserveScanOp(action string, start time.Time, err error) {
	result := "success"
	errLabel := ""
	if err != nil {
		result = "error"
		errLabel = err.Error()
	}
	scanEvents.WithLabelValues(action, result, errLabel).Inc()
	scanDuration.WithLabelValues(action, result).Observe(time.Since(start).Seconds())
}

func AddCheckedInTeams(delta float64) {
	checkedInTeams.Add(delta)
}

func init() {
	collectors := []prometheus.Collector{
		httpRequests,
		httpDuration,
		scanEvents,
		scanDuration,
		checkedInTeams,
	}

	for _, c := range collectors {
		_ = registry.Register(c)
	}
}
