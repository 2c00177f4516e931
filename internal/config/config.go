// config - источник загрузки конфигурации консоли.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env    string       `yaml:"env" env:"ENV" env-default:"local"`
	API    APIConfig    `yaml:"api"`
	Export ExportConfig `yaml:"export"`
	Watch  WatchConfig  `yaml:"watch"`
	State  StateConfig  `yaml:"state"`
}

// APIConfig — параметры доступа к бэкенду магазина.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"API_BASE_URL" env-default:"http://127.0.0.1:8000"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"8s"`
	Retry   RetryConfig   `yaml:"retry"`
}

// RetryConfig — опциональный ретрай транспортных ошибок (см. client.WithRetry).
type RetryConfig struct {
	Attempts  int           `yaml:"attempts" env:"API_RETRY_ATTEMPTS" env-default:"3"`
	BaseDelay time.Duration `yaml:"base_delay" env:"API_RETRY_BASE_DELAY" env-default:"1s"`
}

// ExportConfig — куда и как выгружаются файлы.
type ExportConfig struct {
	Dir      string `yaml:"dir" env:"EXPORT_DIR" env-default:"./exports"`
	Currency string `yaml:"currency" env:"EXPORT_CURRENCY" env-default:"₹"`
}

// WatchConfig — интервалы фонового опроса.
type WatchConfig struct {
	Invalidate time.Duration `yaml:"invalidate" env:"WATCH_INVALIDATE" env-default:"30s"`
	LowStock   time.Duration `yaml:"low_stock" env:"WATCH_LOW_STOCK" env-default:"60s"`
}

// StateConfig — путь к файлу локального состояния (токены, тема).
// Пустой путь — ~/.config/shop-console/state.json.
type StateConfig struct {
	Path string `yaml:"path" env:"STATE_PATH" env-default:""`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}

// StatePath возвращает путь к файлу состояния с учётом дефолта.
func (c *Config) StatePath() (string, error) {
	if c.State.Path != "" {
		return c.State.Path, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}

	return base + string(os.PathSeparator) + "shop-console" + string(os.PathSeparator) + "state.json", nil
}
