package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	WebSocket WebSocketConfig `mapstructure:"websocket"`
	Relay     RelayConfig     `mapstructure:"relay"`
	Session   SessionConfig   `mapstructure:"session"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port        int           `mapstructure:"port"`
	MetricsPort int           `mapstructure:"metrics_port"`
	Host        string        `mapstructure:"host"`
	Type        string        `mapstructure:"type"`
	SecretKey   string        `mapstructure:"secret_key"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	// NodeID identifies this process on the relay backbone. Generated at
	// startup when empty.
	NodeID      string `mapstructure:"node_id"`
	CorsOrigins string `mapstructure:"cors_origins"`
}

type MetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	EnableLatency bool `mapstructure:"enable_latency"`
	EnableRelay   bool `mapstructure:"enable_relay"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type WebSocketConfig struct {
	MaxConnections int           `mapstructure:"max_connections"`
	PingPeriod     time.Duration `mapstructure:"ping_period"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	SendBuffer     int           `mapstructure:"send_buffer"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
}

type RelayConfig struct {
	CrossNode          bool          `mapstructure:"cross_node"`
	Channel            string        `mapstructure:"channel"`
	BreakerTimeout     time.Duration `mapstructure:"breaker_timeout"`
	BreakerMaxFailures uint32        `mapstructure:"breaker_max_failures"`
}

type SessionConfig struct {
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	MaxMessageLength int           `mapstructure:"max_message_length"`
	DefaultPageSize  int           `mapstructure:"default_page_size"`
	MaxPageSize      int           `mapstructure:"max_page_size"`
	IdempotencyTTL   time.Duration `mapstructure:"idempotency_ttl"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type TelemetryConfig struct {
	Enabled  bool                   `mapstructure:"enabled"`
	Workers  int                    `mapstructure:"workers"`
	Exporter string                 `mapstructure:"exporter"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues()
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	applyDefaults(&globalConfig)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Server.Type == "" {
		cfg.Server.Type = "api"
	}
	if cfg.Server.TokenTTL == 0 {
		cfg.Server.TokenTTL = 24 * time.Hour
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.WebSocket.MaxConnections == 0 {
		cfg.WebSocket.MaxConnections = 1000
	}
	if cfg.WebSocket.PongWait == 0 {
		cfg.WebSocket.PongWait = 60 * time.Second
	}
	if cfg.WebSocket.PingPeriod == 0 || cfg.WebSocket.PingPeriod >= cfg.WebSocket.PongWait {
		cfg.WebSocket.PingPeriod = cfg.WebSocket.PongWait * 9 / 10
	}
	if cfg.WebSocket.WriteWait == 0 {
		cfg.WebSocket.WriteWait = 10 * time.Second
	}
	if cfg.WebSocket.SendBuffer == 0 {
		cfg.WebSocket.SendBuffer = 64
	}
	if cfg.WebSocket.MaxMessageSize == 0 {
		cfg.WebSocket.MaxMessageSize = 64 * 1024
	}
	if cfg.Relay.Channel == "" {
		cfg.Relay.Channel = "teachme:relay"
	}
	if cfg.Relay.BreakerTimeout == 0 {
		cfg.Relay.BreakerTimeout = 30 * time.Second
	}
	if cfg.Relay.BreakerMaxFailures == 0 {
		cfg.Relay.BreakerMaxFailures = 5
	}
	if cfg.Session.RequestTimeout == 0 {
		cfg.Session.RequestTimeout = 10 * time.Second
	}
	if cfg.Session.MaxMessageLength == 0 {
		cfg.Session.MaxMessageLength = 4000
	}
	if cfg.Session.DefaultPageSize == 0 {
		cfg.Session.DefaultPageSize = 50
	}
	if cfg.Session.MaxPageSize == 0 {
		cfg.Session.MaxPageSize = 500
	}
	if cfg.Session.IdempotencyTTL == 0 {
		cfg.Session.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.RateLimit.Limit == 0 {
		cfg.RateLimit.Limit = 30
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = time.Minute
	}
	if cfg.Telemetry.Workers == 0 {
		cfg.Telemetry.Workers = 2
	}
}

func GetConfig() *Config {
	return &globalConfig
}
