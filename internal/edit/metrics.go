package edit

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics: Prometheus-метрики редактора
type Metrics struct {
	picks  *prometheus.CounterVec
	edits  *prometheus.CounterVec
	blocks prometheus.Gauge
}

// NewMetrics создаёт метрики и регистрирует их в reg.
// При reg == nil метрики считаются, но никуда не экспортируются.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		picks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockscene",
			Subsystem: "edit",
			Name:      "picks_total",
			Help:      "Число пиков по результату (hit/miss).",
		}, []string{"result"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blockscene",
			Subsystem: "edit",
			Name:      "actions_total",
			Help:      "Число действий редактирования по типу и результату.",
		}, []string{"action", "status"}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blockscene",
			Subsystem: "world",
			Name:      "blocks",
			Help:      "Текущее число блоков в мире.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.picks, m.edits, m.blocks)
	}
	return m
}

func (m *Metrics) observePick(hit bool) {
	if hit {
		m.picks.WithLabelValues("hit").Inc()
		return
	}
	m.picks.WithLabelValues("miss").Inc()
}

func (m *Metrics) observeEdit(r Result, blocks int) {
	m.edits.WithLabelValues(string(r.Action), string(r.Status)).Inc()
	m.blocks.Set(float64(blocks))
}
