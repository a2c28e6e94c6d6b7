package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	FeedLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopdir_feed_loads_total",
			Help: "Feed loads by outcome (live or sample).",
		},
		[]string{"outcome"},
	)

	FeedRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shopdir_feed_records",
			Help: "Business records returned by the most recent feed load.",
		},
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopdir_search_requests_total",
			Help: "Search requests by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	OrdersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopdir_orders_total",
			Help: "Receipts issued at checkout.",
		},
	)
)

func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{FeedLoadsTotal, FeedRecords, SearchRequestsTotal, OrdersTotal} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return err
		}
	}
	return nil
}

// Start serves /metrics on port in the background. The returned server can be
// shut down by the caller.
func Start(port string, logger *zap.Logger) (*http.Server, error) {
	if err := Register(prometheus.DefaultRegisterer); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return srv, nil
}
