// config реализует конфигурацию hackerbabel: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	DB         DBConfig         `yaml:"db"`
	HackerNews HackerNewsConfig `yaml:"hackernews"`
	Unbabel    UnbabelConfig    `yaml:"unbabel"`
	Langs      LangConfig       `yaml:"langs"`
	Poller     PollerConfig     `yaml:"poller"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Retry      RetryConfig      `yaml:"retry"`
}

// HTTPConfig — health/metrics HTTP-сервер.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к MongoDB.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
}

// HackerNewsConfig — источник историй (Firebase API Hacker News).
type HackerNewsConfig struct {
	BaseURL string        `yaml:"base_url" env:"HN_BASE_URL" env-default:"https://hacker-news.firebaseio.com/v0"`
	Timeout time.Duration `yaml:"timeout"  env:"HN_TIMEOUT"  env-default:"15s"`
}

// UnbabelConfig — внешний API переводов (sandbox).
type UnbabelConfig struct {
	BaseURL  string        `yaml:"base_url" env:"UNBABEL_API_URI"    env-default:"http://sandbox.unbabel.com/tapi/v2/translation/"`
	Username string        `yaml:"username" env:"UNBABEL_API_USER"   env-default:""`
	Secret   string        `yaml:"secret"   env:"UNBABEL_API_SECRET" env-default:""`
	Timeout  time.Duration `yaml:"timeout"  env:"UNBABEL_TIMEOUT"    env-default:"15s"`
}

// LangConfig — исходный язык и целевые языки перевода заголовков.
type LangConfig struct {
	Source  string   `yaml:"source"  env:"SOURCE_LANGUAGE"  env-default:"EN"`
	Targets []string `yaml:"targets" env:"TARGET_LANGUAGES" env-default:"DE,PT" env-separator:","`
}

// PollerConfig — цикл опроса источника.
type PollerConfig struct {
	Interval   time.Duration `yaml:"interval"    env:"POLL_INTERVAL" env-default:"10m"`
	TopStories int           `yaml:"top_stories" env:"TOP_STORIES"   env-default:"10"`
}

// DispatcherConfig — цикл раздачи работы и пул воркеров.
type DispatcherConfig struct {
	Interval time.Duration `yaml:"interval" env:"DISPATCH_INTERVAL" env-default:"40s"`
	// Размер пула — граница параллелизма; внутренняя очередь пула и есть
	// backpressure для диспетчера.
	Workers int `yaml:"workers" env:"DISPATCH_WORKERS" env-default:"4"`
	// Минимум ожидающих задач, при котором тик вообще начинает съём.
	MinPending int `yaml:"min_pending" env:"DISPATCH_MIN_PENDING" env-default:"1"`
	// Максимум задач, снимаемых за один тик.
	BatchSize int `yaml:"batch_size" env:"DISPATCH_BATCH_SIZE" env-default:"32"`
}

// RetryConfig — политика повторов для обработчика переводов.
// Заменяет busy-wait оригинальной конструкции: экспоненциальный backoff
// с ограничением числа попыток и терминальным статусом failed.
type RetryConfig struct {
	BaseDelay      time.Duration `yaml:"base_delay"      env:"RETRY_BASE_DELAY"      env-default:"1s"`
	SubmitAttempts int           `yaml:"submit_attempts" env:"RETRY_SUBMIT_ATTEMPTS" env-default:"5"`
	PollInterval   time.Duration `yaml:"poll_interval"   env:"RETRY_POLL_INTERVAL"   env-default:"5s"`
	PollAttempts   int           `yaml:"poll_attempts"   env:"RETRY_POLL_ATTEMPTS"   env-default:"60"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
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

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		if err := c.validate(); err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}

	if c.HackerNews.BaseURL == "" {
		return fmt.Errorf("hackernews.base_url is required")
	}

	if c.Unbabel.BaseURL == "" {
		return fmt.Errorf("unbabel.base_url is required")
	}

	if c.Langs.Source == "" {
		return fmt.Errorf("langs.source is required")
	}

	if len(c.Langs.Targets) == 0 {
		return fmt.Errorf("langs.targets must not be empty")
	}

	for _, lang := range c.Langs.Targets {
		if lang == c.Langs.Source {
			return fmt.Errorf("langs.targets must not contain the source language %q", lang)
		}
	}

	if c.Poller.Interval <= 0 {
		return fmt.Errorf("poller.interval must be > 0")
	}

	if c.Poller.TopStories <= 0 {
		return fmt.Errorf("poller.top_stories must be > 0")
	}

	if c.Dispatcher.Interval <= 0 {
		return fmt.Errorf("dispatcher.interval must be > 0")
	}

	if c.Dispatcher.Workers <= 0 {
		return fmt.Errorf("dispatcher.workers must be > 0")
	}

	if c.Dispatcher.MinPending <= 0 {
		return fmt.Errorf("dispatcher.min_pending must be > 0")
	}

	if c.Dispatcher.BatchSize <= 0 {
		return fmt.Errorf("dispatcher.batch_size must be > 0")
	}

	if c.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry.base_delay must be > 0")
	}

	if c.Retry.SubmitAttempts <= 0 {
		return fmt.Errorf("retry.submit_attempts must be > 0")
	}

	if c.Retry.PollInterval <= 0 {
		return fmt.Errorf("retry.poll_interval must be > 0")
	}

	if c.Retry.PollAttempts <= 0 {
		return fmt.Errorf("retry.poll_attempts must be > 0")
	}

	return nil
}
