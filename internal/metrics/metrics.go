// Package metrics — prometheus-метрики фоновой оркестрации.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — набор коллекторов сервиса. Создаётся один раз в main и
// передаётся зависимостью (в тестах — со своим Registry).
type Metrics struct {
	// PollTicks — тики Poller-а по результату (ok|error).
	PollTicks *prometheus.CounterVec
	// JobsQueued — поставленные в очередь задачи по виду.
	JobsQueued *prometheus.CounterVec
	// JobsProcessed — завершённые задачи по виду и результату
	// (ok|error|panic|dropped).
	JobsProcessed *prometheus.CounterVec
	// QueueDepth — глубина очереди на момент последнего тика диспетчера.
	QueueDepth prometheus.Gauge
}

// New регистрирует коллекторы в reg и возвращает набор.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PollTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackerbabel",
			Name:      "poll_ticks_total",
			Help:      "Poller ticks by result.",
		}, []string{"result"}),
		JobsQueued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackerbabel",
			Name:      "jobs_queued_total",
			Help:      "Enrichment jobs pushed to the queue by kind.",
		}, []string{"kind"}),
		JobsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hackerbabel",
			Name:      "jobs_processed_total",
			Help:      "Enrichment jobs finished by kind and result.",
		}, []string{"kind", "result"}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hackerbabel",
			Name:      "queue_depth",
			Help:      "Pending jobs observed at the last dispatcher tick.",
		}),
	}

	reg.MustRegister(m.PollTicks, m.JobsQueued, m.JobsProcessed, m.QueueDepth)

	return m
}
