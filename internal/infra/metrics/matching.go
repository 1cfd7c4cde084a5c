package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		searchesTotal,
		searchResultsSize,
		likesTotal,
		matchesTotal,
		premiumExpiredTotal,
	)
}

var (
	searchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searches_total",
			Help: "Total number of profile searches performed.",
		},
	)

	searchResultsSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_results_size",
			Help:    "Distribution of candidate counts returned per search.",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)

	likesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "likes_total",
			Help: "Total number of likes recorded.",
		},
	)

	matchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_total",
			Help: "Total number of mutual matches detected.",
		},
	)

	premiumExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "premium_expired_total",
			Help: "Premium grants cleared by the expiry sweep.",
		},
	)
)

func ObserveSearch(results int) {
	searchesTotal.Inc()
	searchResultsSize.Observe(float64(results))
}

func IncLike() { likesTotal.Inc() }

func IncMatch() { matchesTotal.Inc() }

func AddPremiumExpired(n int) { premiumExpiredTotal.Add(float64(n)) }
