package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	BookingsCreated        prometheus.Counter
	BookingTransitions     *prometheus.CounterVec
	EquipmentMutations     *prometheus.CounterVec
	NotificationsDelivered *prometheus.CounterVec
	StoreErrors            *prometheus.CounterVec
	RequestDuration        *prometheus.HistogramVec
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		BookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "equipment_bookings_created_total",
			Help: "Total number of booking requests created",
		}),

		BookingTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "equipment_booking_transitions_total",
			Help: "Booking status transitions by target status",
		}, []string{"status"}),

		EquipmentMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "equipment_mutations_total",
			Help: "Equipment writes by operation",
		}, []string{"op"}),

		NotificationsDelivered: f.NewCounterVec(prometheus.CounterOpts{
			Name: "equipment_notifications_delivered_total",
			Help: "Notifications delivered by channel",
		}, []string{"channel"}),

		StoreErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "equipment_store_errors_total",
			Help: "Failed store operations by operation",
		}, []string{"op"}),

		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "equipment_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
