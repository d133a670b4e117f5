// Package metrics provides Prometheus instrumentation for the match service.
// Collectors are registered on the default registry at init.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// VotesTotal counts processed votes, labeled by decision ("like", "dislike")
	// and outcome ("matched", "recorded", "ignored", "rate_limited").
	VotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "muzz_match_votes_total",
		Help: "Total number of votes processed",
	}, []string{"decision", "outcome"})

	// MatchesTotal counts votes that reported a mutual match.
	MatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "muzz_match_matches_total",
		Help: "Total number of votes that resulted in a mutual match",
	})

	// LuckyPicksTotal counts lucky picks by result: "hit" or "empty".
	LuckyPicksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "muzz_match_lucky_picks_total",
		Help: "Total number of lucky pick requests",
	}, []string{"result"})

	// StoreErrorsTotal counts failed operations that reached the store, by RPC.
	StoreErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "muzz_match_store_errors_total",
		Help: "Total number of operations failed by the vote or profile store",
	}, []string{"op"})

	// OperationLatency records RPC latency in seconds, by RPC.
	OperationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "muzz_match_operation_latency_seconds",
		Help:    "MatchService operation latency in seconds",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(
		VotesTotal,
		MatchesTotal,
		LuckyPicksTotal,
		StoreErrorsTotal,
		OperationLatency,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
