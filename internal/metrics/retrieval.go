package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and embedding Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagepal",
			Name:      "retrieval_requests_total",
			Help:      "Total number of context retrieval requests",
		},
		[]string{"result"}, // "hit" / "miss" / "empty" / "error"
	)

	RetrievalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pagepal",
			Name:      "retrieval_duration_seconds",
			Help:      "Context retrieval duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ContextCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagepal",
			Name:      "context_cache_total",
			Help:      "Assembled-context cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagepal",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pagepal",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagepal",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pagepal",
			Name:      "chat_requests_total",
			Help:      "Total number of chat completion requests",
		},
		[]string{"model", "status"},
	)
)

var appMetricsRegistered bool

// RegisterAppMetrics registers retrieval metrics. Must be called once from main.
func RegisterAppMetrics() {
	if appMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalRequestsTotal)
	prometheus.MustRegister(RetrievalDuration)
	prometheus.MustRegister(ContextCacheTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(ChatRequestsTotal)
	appMetricsRegistered = true
}
