package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramUpdatesTotal,
		telegramSendFailuresTotal,
	)
}

var (
	telegramUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_updates_total",
			Help: "Incoming updates by kind (command/text/voice/photo/other).",
		},
		[]string{"kind"},
	)

	telegramSendFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_send_failures_total",
			Help: "Outbound send/edit/delete operations that failed.",
		},
	)
)

func IncTelegramUpdate(kind string) {
	telegramUpdatesTotal.WithLabelValues(norm(kind)).Inc()
}

func IncTelegramSendFailure() {
	telegramSendFailuresTotal.Inc()
}
