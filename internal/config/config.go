package config

import (
	"io/ioutil"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации приложения.

type Config struct {
	World   WorldConfig   `yaml:"world"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

type WorldConfig struct {
	Title             string `yaml:"title"`
	Seed              string `yaml:"seed"`
	ViewDistanceX     int    `yaml:"view_distance_x"`
	ViewDistanceZ     int    `yaml:"view_distance_z"`
	DayLengthSeconds  int    `yaml:"day_length_seconds"`
	TickIntervalMs    int    `yaml:"tick_interval_ms"`
	MaxUpdatesPerTick int    `yaml:"max_updates_per_tick"`
}

type StorageConfig struct {
	DataPath string `yaml:"data_path"`
}

type ServerConfig struct {
	HTTPPort int `yaml:"http_port"`
}

// GetViewDistanceX возвращает дальность видимости по X с дефолтом
func (w *WorldConfig) GetViewDistanceX() int {
	return getIntWithEnvFallback(w.ViewDistanceX, "WORLD_VIEW_DISTANCE_X", 16)
}

// GetViewDistanceZ возвращает дальность видимости по Z с дефолтом
func (w *WorldConfig) GetViewDistanceZ() int {
	return getIntWithEnvFallback(w.ViewDistanceZ, "WORLD_VIEW_DISTANCE_Z", 16)
}

// GetDayLengthSeconds возвращает длину игровых суток в секундах
func (w *WorldConfig) GetDayLengthSeconds() int {
	return getIntWithEnvFallback(w.DayLengthSeconds, "WORLD_DAY_LENGTH", 720)
}

// GetTickIntervalMs возвращает интервал итерации фонового цикла
func (w *WorldConfig) GetTickIntervalMs() int {
	return getIntWithEnvFallback(w.TickIntervalMs, "WORLD_TICK_INTERVAL_MS", 50)
}

// GetMaxUpdatesPerTick возвращает лимит обновлений чанков за итерацию
func (w *WorldConfig) GetMaxUpdatesPerTick() int {
	return getIntWithEnvFallback(w.MaxUpdatesPerTick, "WORLD_MAX_UPDATES_PER_TICK", 8)
}

// GetDataPath возвращает путь к данным мира
func (s *StorageConfig) GetDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	if env := os.Getenv("WORLD_DATA_PATH"); env != "" {
		return env
	}
	return "data"
}

// GetHTTPPort возвращает порт HTTP сервера (статус + метрики)
func (s *ServerConfig) GetHTTPPort() int {
	return getIntWithEnvFallback(s.HTTPPort, "WORLD_HTTP_PORT", 8088)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultValue
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV WORLD_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("WORLD_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
