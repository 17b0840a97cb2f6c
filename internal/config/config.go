package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPath используется, если CONFIG_PATH не задан
const DefaultPath = "config/config.yaml"

// Config определяет структуру конфигурации всего приложения целиком
type Config struct {
	HTTPServer `yaml:"http_server"`
	Backend    `yaml:"backend"`
	Kafka      `yaml:"kafka"`
	Logger     `yaml:"logger"`
	Dashboard  `yaml:"dashboard"`
}

// HTTPServer содержит конфигурацию для HTTP-сервера
type HTTPServer struct {
	Port    string        `yaml:"port" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// Backend содержит адрес REST API бэкенда заказов
type Backend struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	// сколько запросов за участниками/материалами выполнять одновременно, 0 — без ограничения
	MaxParallel int `yaml:"max_parallel" validate:"gte=0"`
}

// Kafka содержит конфигурацию для подписки на уведомления об изменении заказов
type Kafka struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `yaml:"topic" validate:"required_if=Enabled true"`
	GroupID string   `yaml:"group_id" validate:"required_if=Enabled true"`
}

// Logger содержит конфигурацию для логгера
type Logger struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json"`
}

// Dashboard содержит параметры представления данных
type Dashboard struct {
	Timezone   string `yaml:"timezone"`
	TopVendors int    `yaml:"top_vendors" validate:"gte=0"`
}

// Location возвращает часовой пояс дашборда, по умолчанию UTC
func (d Dashboard) Location() (*time.Location, error) {
	if d.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(d.Timezone)
}

// Load читает и проверяет конфигурацию из файла по указанному пути
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read config file: %w", op, err)
	}

	cfg := Config{
		Dashboard: Dashboard{TopVendors: 3},
	}
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to unmarshal config: %w", op, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}
	if _, err := cfg.Dashboard.Location(); err != nil {
		return nil, fmt.Errorf("%s: invalid dashboard timezone: %w", op, err)
	}

	return &cfg, nil
}

// MustLoad загружает конфигурацию из файла по указанному пути
// в случае ошибки программа завершается с фатальной ошибкой
func MustLoad(configPath string) *Config {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		configPath = DefaultPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}
