package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nestlink_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MatchesCreated counts matches created by trigger path.
	MatchesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nestlink_matches_created_total",
		Help: "Total number of matches created, by trigger (mutual_like or chat_init)",
	}, []string{"trigger"})

	// MessagesSent counts chat messages accepted.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nestlink_messages_sent_total",
		Help: "Total number of chat messages accepted",
	})
)

var (
	promOnce sync.Once
	promMW   *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The middleware registers collectors in the default registry, so it is
// created once; later calls (e.g. per-test servers) get the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promMW = fiberprometheus.New(serviceName)
	})
	return promMW
}

// MetricsMiddleware returns the request-metrics middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
