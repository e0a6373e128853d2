package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig    `mapstructure:"server"`
	IdentityChain ChainConfig     `mapstructure:"identity_chain"`
	CircleChain   ChainConfig     `mapstructure:"circle_chain"`
	Verifier      VerifierConfig  `mapstructure:"verifier"`
	Batch         BatchConfig     `mapstructure:"batch"`
	Monitor       MonitorConfig   `mapstructure:"monitor"`
	Health        HealthConfig    `mapstructure:"health"`
	Redis         RedisConfig     `mapstructure:"redis"`
	RabbitMQ      RabbitMQConfig  `mapstructure:"rabbitmq"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
	Log           LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// ChainConfig describes one ledger connection. Chain A (identity) and
// chain B (circles) share the shape.
type ChainConfig struct {
	Name            string        `mapstructure:"name"`
	RPCURL          string        `mapstructure:"rpc_url"`
	ContractAddress string        `mapstructure:"contract_address"`
	ChainID         int64         `mapstructure:"chain_id"`
	CallTimeout     time.Duration `mapstructure:"call_timeout"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	SignerKey       string        `mapstructure:"signer_key"` // hex private key; empty = read-only
}

// IsWebsocket reports whether the RPC endpoint supports push subscriptions.
func (c ChainConfig) IsWebsocket() bool {
	return strings.HasPrefix(c.RPCURL, "ws://") || strings.HasPrefix(c.RPCURL, "wss://")
}

type VerifierConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	// Attestations maps oracle attestation ids to document types.
	Attestations map[string]string `mapstructure:"attestations"`
}

type BatchConfig struct {
	ChunkSize    int           `mapstructure:"chunk_size"`
	ChunkDelay   time.Duration `mapstructure:"chunk_delay"`
	MaxAddresses int           `mapstructure:"max_addresses"`
}

type MonitorConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	QueueSize   int  `mapstructure:"queue_size"`
	Workers     int  `mapstructure:"workers"`
	ErrorBuffer int  `mapstructure:"error_buffer"`
}

type HealthConfig struct {
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// RabbitMQConfig configures the derived-event sink. Empty URL disables it.
type RabbitMQConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type RateLimitConfig struct {
	Limit  int64         `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ROSCA_.
// Nested keys use underscore: ROSCA_IDENTITY_CHAIN_RPC_URL, ROSCA_BATCH_CHUNK_SIZE, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("identity_chain.name", "celo")
	v.SetDefault("identity_chain.rpc_url", "")
	v.SetDefault("identity_chain.contract_address", "")
	v.SetDefault("identity_chain.chain_id", 0)
	v.SetDefault("identity_chain.call_timeout", "10s")
	v.SetDefault("identity_chain.poll_interval", "5s")
	v.SetDefault("identity_chain.signer_key", "")

	v.SetDefault("circle_chain.name", "ethereum")
	v.SetDefault("circle_chain.rpc_url", "")
	v.SetDefault("circle_chain.contract_address", "")
	v.SetDefault("circle_chain.chain_id", 0)
	v.SetDefault("circle_chain.call_timeout", "10s")
	v.SetDefault("circle_chain.poll_interval", "12s")
	v.SetDefault("circle_chain.signer_key", "")

	v.SetDefault("verifier.url", "http://localhost:3002")
	v.SetDefault("verifier.timeout", "15s")
	v.SetDefault("verifier.attestations", map[string]string{
		"1": "passport",
		"2": "eu_id_card",
		"3": "aadhaar",
	})

	v.SetDefault("batch.chunk_size", 10)
	v.SetDefault("batch.chunk_delay", "100ms")
	v.SetDefault("batch.max_addresses", 50)

	v.SetDefault("monitor.enabled", true)
	v.SetDefault("monitor.queue_size", 256)
	v.SetDefault("monitor.workers", 4)
	v.SetDefault("monitor.error_buffer", 64)

	v.SetDefault("health.probe_timeout", "5s")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "rosca.events")

	v.SetDefault("rate_limit.limit", 100)
	v.SetDefault("rate_limit.window", "15m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// ROSCA_IDENTITY_CHAIN_RPC_URL -> identity_chain.rpc_url
	v.SetEnvPrefix("ROSCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A config file is optional; env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings without which the bridge cannot start.
func (c *Config) Validate() error {
	var errs []error
	for _, ch := range []struct {
		key string
		cfg ChainConfig
	}{
		{"identity_chain", c.IdentityChain},
		{"circle_chain", c.CircleChain},
	} {
		if ch.cfg.RPCURL == "" {
			errs = append(errs, fmt.Errorf("%s.rpc_url is required", ch.key))
		}
		if ch.cfg.ContractAddress == "" {
			errs = append(errs, fmt.Errorf("%s.contract_address is required", ch.key))
		}
	}
	if c.Batch.ChunkSize <= 0 {
		errs = append(errs, errors.New("batch.chunk_size must be positive"))
	}
	if c.Batch.ChunkDelay <= 0 {
		errs = append(errs, errors.New("batch.chunk_delay must be positive"))
	}
	if c.Monitor.QueueSize <= 0 {
		errs = append(errs, errors.New("monitor.queue_size must be positive"))
	}
	if len(c.Verifier.Attestations) == 0 {
		errs = append(errs, errors.New("verifier.attestations must not be empty"))
	}
	return errors.Join(errs...)
}
