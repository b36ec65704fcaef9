package eventbus

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/blockscene/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsExporter управляет HTTP-эндпоинтом Prometheus и периодически обновляет Gauge/Counter.
type MetricsExporter struct {
	bus    EventBus
	quit   chan struct{}
	done   chan struct{}
	server *http.Server
	prev   Stats
	// Prometheus metrics
	published prometheus.Counter
	consumed  prometheus.Counter
	dropped   prometheus.Counter
	inflight  prometheus.Gauge
}

// NewMetricsExporter создаёт экспортер, но не запускает HTTP-сервер.
// Метрики регистрируются в reg (обычно prometheus.DefaultRegisterer).
func NewMetricsExporter(bus EventBus, reg prometheus.Registerer) *MetricsExporter {
	me := &MetricsExporter{
		bus:  bus,
		quit: make(chan struct{}),
		done: make(chan struct{}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "messages_published_total",
			Help:      "Общее число опубликованных сообщений.",
		}),
		consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "messages_consumed_total",
			Help:      "Общее число доставленных сообщений подписчикам.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventbus",
			Name:      "messages_dropped_total",
			Help:      "Сообщений, отброшенных из-за ошибок или ограничения back-pressure.",
		}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eventbus",
			Name:      "messages_inflight",
			Help:      "Количество сообщений, находящихся в очереди (не доставленных).",
		}),
	}

	reg.MustRegister(me.published, me.consumed, me.dropped, me.inflight)
	return me
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: HTTP-сервер стартует в отдельной горутине.
func (m *MetricsExporter) StartHTTP(addr string, gatherer prometheus.Gatherer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	m.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	m.Start()
}

// Start запускает только периодическое обновление метрик, без HTTP
func (m *MetricsExporter) Start() {
	go m.loop()
}

// Stop останавливает обновление метрик и HTTP-сервер, если он запущен
func (m *MetricsExporter) Stop(ctx context.Context) error {
	close(m.quit)
	<-m.done
	m.collect()
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}

func (m *MetricsExporter) loop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	defer close(m.done)

	for {
		select {
		case <-ticker.C:
			m.collect()
		case <-m.quit:
			return
		}
	}
}

// collect переносит приращения Stats шины в счётчики Prometheus.
// Для коррекции Counter храним прошлое значение и прибавляем дельту.
func (m *MetricsExporter) collect() {
	stats := m.bus.Metrics()

	deltaPub := stats.Published - m.prev.Published
	deltaCons := stats.Consumed - m.prev.Consumed
	deltaDrop := stats.Dropped - m.prev.Dropped

	if deltaPub > 0 {
		m.published.Add(float64(deltaPub))
	}
	if deltaCons > 0 {
		m.consumed.Add(float64(deltaCons))
	}
	if deltaDrop > 0 {
		m.dropped.Add(float64(deltaDrop))
	}

	m.inflight.Set(float64(stats.InFlight))
	m.prev = stats
}
