// File: internal/infra/metrics/history.go
package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(historiesPrunedTotal)
}

var historiesPrunedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "chat_histories_pruned_total",
		Help: "Idle user histories dropped by the reaper.",
	},
)

func IncHistoriesPruned(n int) {
	historiesPrunedTotal.Add(float64(n))
}
