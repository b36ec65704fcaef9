package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockscene/internal/app"
	"github.com/annel0/blockscene/internal/config"
	"github.com/annel0/blockscene/internal/eventbus"
	"github.com/annel0/blockscene/internal/logging"
	"github.com/annel0/blockscene/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $SCENE_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logging.Configure(logging.Options{
		Dir:          cfg.Logging.Dir,
		ConsoleLevel: logging.ParseLevel(cfg.Logging.ConsoleLevel),
		FileLevel:    logging.ParseLevel(cfg.Logging.FileLevel),
	})
	if err := logging.InitDefaultLogger("blockscene"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🌸 Запуск Block Scene...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry.Enabled, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("❌ Ошибка инициализации OpenTelemetry: %v", err)
	}

	bus := eventbus.NewMemoryBus(cfg.EventBus.Capacity)
	if _, err := eventbus.StartLoggingListener(bus, logging.GetComponentLogger("eventbus")); err != nil {
		logging.Error("❌ Ошибка подписки LoggingListener: %v", err)
	}

	var (
		registerer prometheus.Registerer
		exporter   *eventbus.MetricsExporter
	)
	if cfg.Metrics.Enabled {
		registerer = prometheus.DefaultRegisterer
		exporter = eventbus.NewMetricsExporter(bus, registerer)
		exporter.StartHTTP(cfg.Metrics.Addr(), prometheus.DefaultGatherer)
	}

	scene, err := app.NewScene(app.Options{
		Config:     cfg,
		Bus:        bus,
		Registerer: registerer,
	})
	if err != nil {
		log.Fatalf("❌ Ошибка создания сцены: %v", err)
	}

	report := scene.Report()
	logging.Info("🌳 Сцена: деревьев=%d, построек=%d, блоков=%d, пропущено=%d",
		report.Trees, report.Structures, report.Blocks, report.Skipped)
	logging.Info("✅ Готово. Введите help для списка команд")

	runner := &commandRunner{scene: scene, out: os.Stdout}
	lines := readLines(os.Stdin)

loop:
	for {
		select {
		case <-ctx.Done():
			logging.Info("📡 Получен сигнал завершения, завершение работы...")
			break loop
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			err := runner.run(ctx, line)
			if errors.Is(err, errQuit) {
				break loop
			}
			if err != nil {
				fmt.Fprintf(os.Stdout, "ошибка: %v\n", err)
			}
		}
	}

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	scene.Close()
	bus.Close()
	if exporter != nil {
		if err := exporter.Stop(shutdownCtx); err != nil {
			logging.Error("❌ Ошибка остановки Prometheus: %v", err)
		}
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
	}

	logging.Info("👋 Block Scene остановлена")
}
