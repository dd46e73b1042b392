package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// TranslationCacheTotal counts translation cache lookups.
	// The cache label separates the client-side search cache from the server-side service cache.
	TranslationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_cache_total",
			Help:      "Translation cache hits and misses",
		},
		[]string{"cache", "direction", "result"}, // result: "hit" / "miss"
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Total number of searches by mode and result kind",
		},
		[]string{"mode", "kind"},
	)

	TranslationServiceUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "translation_service_up",
			Help:      "1 when the last probe found the translation service usable",
		},
	)

	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "translation_provider_requests_total",
			Help:      "Total number of translation provider requests",
		},
		[]string{"provider", "status"},
	)
)

func init() {
	prometheus.MustRegister(TranslationCacheTotal)
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(TranslationServiceUp)
	prometheus.MustRegister(ProviderRequestsTotal)
}

func ObserveCache(cache, direction string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	TranslationCacheTotal.WithLabelValues(cache, direction, result).Inc()
}

func SetServiceUp(up bool) {
	if up {
		TranslationServiceUp.Set(1)
		return
	}
	TranslationServiceUp.Set(0)
}
