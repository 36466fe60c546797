package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(notificationsTotal) }

var notificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "homework_notifications_total",
		Help: "Chat notifications by delivery status.",
	},
	[]string{"status"}, // 'sent', 'failed'
)

func IncNotification(status string) {
	notificationsTotal.WithLabelValues(norm(status)).Inc()
}
