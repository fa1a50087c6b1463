package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Per-operation counters
var CreateMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_create_total",
		Help: "Total number of merchant creations",
	},
)

var UpdateMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_update_total",
		Help: "Total number of merchant updates",
	},
)

var DeleteMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_delete_total",
		Help: "Total number of merchant deletions",
	},
)

var GetMerchantCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_get_total",
		Help: "Total number of merchant retrievals",
	},
)

var ListMerchantsCounter = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "merchant_list_total",
		Help: "Total number of merchant listing requests",
	},
)

// RequestCounter counts all HTTP requests with labels
var RequestCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "path", "status"},
)

var RequestDurationHistogram = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "merchant_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

func init() {
	prometheus.MustRegister(CreateMerchantCounter)
	prometheus.MustRegister(UpdateMerchantCounter)
	prometheus.MustRegister(DeleteMerchantCounter)
	prometheus.MustRegister(GetMerchantCounter)
	prometheus.MustRegister(ListMerchantsCounter)
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDurationHistogram)
}

func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware is an Echo middleware function that records HTTP request metrics
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()

			RequestCounter.WithLabelValues(method, path, strconv.Itoa(status)).Inc()

			duration := time.Since(start).Seconds()
			RequestDurationHistogram.WithLabelValues(method, path).Observe(duration)

			return err
		}
	}
}
