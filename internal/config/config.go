package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string        `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Redis        Redis         `yaml:"redis"`
	SQLitePath   string        `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"./ticboard.db"`
	JWTSecretKey string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY" env-default:"dev-only-secret"`
	OTLPEndpoint string        `yaml:"otlp-endpoint" env:"OTLP_ENDPOINT" env-default:"otel-collector:4317"`
	SessionTTL   time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the config file at path, falling back to environment
// variables only when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}
		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}
	return config, nil
}

func (r *Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
