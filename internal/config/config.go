package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации сцены.
// Поля, отсутствующие в YAML, сохраняют значения по умолчанию.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Camera    CameraConfig    `yaml:"camera"`
	EventBus  EventBusConfig  `yaml:"eventbus"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WorldConfig struct {
	PickDistance  float64 `yaml:"pick_distance"`
	PlaceDistance float64 `yaml:"place_distance"`
	GroundClamp   bool    `yaml:"ground_clamp"`
	OccupancyMode string  `yaml:"occupancy_mode"` // scan | indexed
	Seed          int64   `yaml:"seed"`
	ExtraTrees    int     `yaml:"extra_trees"`
	SkipDefaults  bool    `yaml:"skip_defaults"`
}

type CameraConfig struct {
	Sensitivity  float64    `yaml:"sensitivity"`
	MoveSpeed    float64    `yaml:"move_speed"`
	TurnSpeed    float64    `yaml:"turn_speed"`
	RotationLerp float64    `yaml:"rotation_lerp"`
	MovementLerp float64    `yaml:"movement_lerp"`
	Position     [3]float64 `yaml:"position"`
	Yaw          float64    `yaml:"yaw"`
	Pitch        float64    `yaml:"pitch"`
	Aspect       float64    `yaml:"aspect"`
}

type EventBusConfig struct {
	Capacity int `yaml:"capacity"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			PickDistance:  10,
			PlaceDistance: 5,
			GroundClamp:   true,
			OccupancyMode: "indexed",
			Seed:          1,
		},
		Camera: CameraConfig{
			Sensitivity:  0.2,
			MoveSpeed:    1,
			TurnSpeed:    1.5,
			RotationLerp: 0.1,
			MovementLerp: 0.1,
			Position:     [3]float64{0, 1.5, 5},
			Yaw:          0,
			Pitch:        -30,
			Aspect:       16.0 / 9.0,
		},
		EventBus: EventBusConfig{Capacity: 256},
		Telemetry: TelemetryConfig{
			ServiceName: "blockscene",
		},
		Logging: LoggingConfig{
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// GetPort возвращает порт Prometheus с поддержкой fallback значений
func (m *MetricsConfig) GetPort() int {
	return getPortWithEnvFallback(m.Port, "SCENE_METRICS_PORT", 2112)
}

// Addr возвращает адрес HTTP-эндпоинта метрик
func (m *MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", m.GetPort())
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	if c.World.PickDistance <= 0 {
		return fmt.Errorf("world.pick_distance должен быть положительным: %v", c.World.PickDistance)
	}
	if c.World.PlaceDistance <= 0 {
		return fmt.Errorf("world.place_distance должен быть положительным: %v", c.World.PlaceDistance)
	}
	switch c.World.OccupancyMode {
	case "scan", "indexed":
	default:
		return fmt.Errorf("world.occupancy_mode: неизвестный режим %q", c.World.OccupancyMode)
	}
	if c.World.ExtraTrees < 0 {
		return fmt.Errorf("world.extra_trees не может быть отрицательным: %d", c.World.ExtraTrees)
	}
	if c.EventBus.Capacity <= 0 {
		return fmt.Errorf("eventbus.capacity должен быть положительным: %d", c.EventBus.Capacity)
	}
	if c.Camera.Aspect <= 0 {
		return fmt.Errorf("camera.aspect должен быть положительным: %v", c.Camera.Aspect)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV SCENE_CONFIG;
// если и он не задан, возвращает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("SCENE_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
