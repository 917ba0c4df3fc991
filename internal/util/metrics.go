package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ListingsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listings_created_total",
		Help: "Total number of listings created",
	}, []string{"family"})

	ListingsUpdatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listings_updated_total",
		Help: "Total number of listings updated",
	}, []string{"family"})

	ListingsDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "listings_deleted_total",
		Help: "Total number of listings deleted",
	}, []string{"family"})

	PurchasesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchases_total",
		Help: "Total number of successful variant purchases",
	}, []string{"family"})

	PurchasesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "purchases_failed_total",
		Help: "Total number of failed variant purchases",
	}, []string{"family", "reason"})

	VariantsSoldOutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "variants_sold_out_total",
		Help: "Total number of variants that transitioned to soldout",
	}, []string{"family"})

	PurchaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "purchase_latency_seconds",
		Help:    "Latency of purchase operations",
		Buckets: prometheus.DefBuckets,
	})

	StockAlertsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_alerts_created_total",
		Help: "Total number of stock alerts created by the alert worker",
	}, []string{"type"})

	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_cache_hits_total",
		Help: "Total number of listing cache hits",
	})

	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "listing_cache_misses_total",
		Help: "Total number of listing cache misses",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
