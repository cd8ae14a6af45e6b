package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	skorRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mrlks_skor_requests_total",
		Help: "Total permintaan pencatatan skor yang diterima API",
	}, []string{"metode", "status"})

	skorEventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mrlks_skor_events_processed_total",
		Help: "Total event skor yang diproses worker rekap",
	})

	rekapDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mrlks_rekap_duration_seconds",
		Help:    "Lama penyusunan ulang snapshot klasemen di worker",
		Buckets: prometheus.DefBuckets,
	})

	klasemenCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mrlks_klasemen_cache_total",
		Help: "Pembacaan klasemen menurut sumber (cache hit/miss)",
	}, []string{"hasil"})
)

func ObserveSkorRequest(metode, status string) {
	skorRequestsTotal.WithLabelValues(metode, status).Inc()
}

func IncSkorEventProcessed() {
	skorEventsProcessed.Inc()
}

func ObserveRekapDuration(seconds float64) {
	rekapDuration.Observe(seconds)
}

func ObserveKlasemenCache(hasil string) {
	klasemenCacheHits.WithLabelValues(hasil).Inc()
}
