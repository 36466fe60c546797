package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		pollCyclesTotal,
		cycleErrorsTotal,
		lastCycleTimestamp,
	)
}

var (
	pollCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homework_poll_cycles_total",
			Help: "Completed poll cycles, labeled by result.",
		},
		[]string{"result"}, // 'notified', 'empty', 'failed'
	)

	cycleErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homework_cycle_errors_total",
			Help: "Poll cycles aborted by an error, labeled by error kind.",
		},
		[]string{"kind"},
	)

	lastCycleTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "homework_last_cycle_timestamp_seconds",
			Help: "Unix time of the last completed poll cycle.",
		},
	)
)

func IncPollCycle(result string) {
	pollCyclesTotal.WithLabelValues(norm(result)).Inc()
}

func IncCycleError(kind string) {
	cycleErrorsTotal.WithLabelValues(norm(kind)).Inc()
}

func SetLastCycle(unix int64) {
	lastCycleTimestamp.Set(float64(unix))
}
