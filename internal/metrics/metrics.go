package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	OrdersCreated   prometheus.Counter
	OrdersRejected  prometheus.Counter
	StatusUpdates   prometheus.Counter
	ProductsCreated prometheus.Counter
	StockConsumed   prometheus.Counter
	HTTPDurationSec *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created successfully.",
	})
	ordersRejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_rejected_insufficient_stock_total",
		Help: "Total number of order attempts rejected for insufficient stock.",
	})
	statusUpdates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_status_updates_total",
		Help: "Total number of order status updates applied.",
	})
	productsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created.",
	})
	stockConsumed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stock_units_consumed_total",
		Help: "Total stock units consumed by created orders.",
	})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds by method, path and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	r.MustRegister(ordersCreated, ordersRejected, statusUpdates, productsCreated, stockConsumed, httpDuration)
	return &Registry{
		reg:             r,
		OrdersCreated:   ordersCreated,
		OrdersRejected:  ordersRejected,
		StatusUpdates:   statusUpdates,
		ProductsCreated: productsCreated,
		StockConsumed:   stockConsumed,
		HTTPDurationSec: httpDuration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
