package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath   = "./config.yaml"
	defaultListenAddr   = ":8080"
	defaultUploadDir    = "./uploads"
	defaultMaxBodyBytes = 10 * 1024 * 1024
	defaultOrigin       = "http://localhost:5173"
	defaultLogLevel     = "info"
)

type Config struct {
	ListenAddr     string   `yaml:"listen_addr" json:"listen_addr"`
	UploadDir      string   `yaml:"upload_dir" json:"upload_dir"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes" json:"max_body_bytes"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	LenientStream  bool     `yaml:"lenient_stream" json:"lenient_stream"`
	KeepPartial    bool     `yaml:"keep_partial" json:"keep_partial"`
	LogLevel       string   `yaml:"log_level" json:"log_level"`
	Metrics        bool     `yaml:"metrics" json:"metrics"`
}

// Default возвращает конфигурацию, с которой сервис работает без файла и ENV.
func Default() *Config {
	return &Config{
		ListenAddr:     defaultListenAddr,
		UploadDir:      defaultUploadDir,
		MaxBodyBytes:   defaultMaxBodyBytes,
		AllowedOrigins: []string{defaultOrigin},
		KeepPartial:    true,
		LogLevel:       defaultLogLevel,
		Metrics:        true,
	}
}

// Load читает YAML-конфигурацию, применяет ENV-переопределения и возвращает актуальную структуру.
// Если путь не задан явно и файла по умолчанию нет, используются дефолты.
func Load(path string) (*Config, error) {
	// .env необязателен, ошибки отсутствия файла игнорируем.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		path = getenv("CONFIG_PATH", defaultConfigPath)
		explicit = os.Getenv("CONFIG_PATH") != ""
	}

	c := Default()
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ENV override
func (c *Config) applyEnv() error {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		c.UploadDir = v
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_BODY_BYTES: %w", err)
		}
		c.MaxBodyBytes = n
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitComma(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"LENIENT_STREAM", &c.LenientStream},
		{"KEEP_PARTIAL", &c.KeepPartial},
		{"METRICS", &c.Metrics},
	}
	for _, f := range flags {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.key, err)
		}
		*f.dst = b
	}

	return nil
}

// Validate проверяет, что конфигурация пригодна для запуска сервера.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen addr is empty")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return fmt.Errorf("upload dir is empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be > 0")
	}
	// Пустой список go-chi/cors трактует как "любой origin".
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed origins is empty")
	}
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimSpace(o); o == "" || strings.Contains(o, "*") {
			return fmt.Errorf("invalid allowed origin %q", o)
		}
	}

	return nil
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
