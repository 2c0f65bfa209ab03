package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "ccmadmin"
)

var (
	queryDurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Count of handled admin HTTP requests.",
	}, []string{"code", "method", "route"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Time taken to serve admin HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Data Provider Metrics
	DataProviderQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataprovider_queries_total",
		Help:      "Count of count/fetch queries issued by table data providers.",
	}, []string{"provider", "query"})

	DataProviderQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dataprovider_query_duration_seconds",
		Help:      "Time taken by a data provider to load one page.",
		Buckets:   queryDurationBuckets,
	}, []string{"provider"})

	// Application Tree Metrics
	TreeChildrenTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tree_children_total",
		Help:      "Count of application tree child expansions.",
	}, []string{"kind"})

	TreeSingletonViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tree_singleton_violations_total",
		Help:      "Count of singleton application types found with more than one instance.",
	})

	// Query Console Metrics
	ConsoleQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "console_queries_total",
		Help:      "Count of statements run through the read-only query console.",
	}, []string{"status"})
)
