package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Config is the root configuration for the health check bot.
type Config struct {
	General  GeneralConfig  `json:"general"`
	Server   ServerConfig   `json:"server"`
	Slack    SlackConfig    `json:"slack"`
	Delivery DeliveryConfig `json:"delivery"`
	Memory   MemoryConfig   `json:"memory"`
	Metrics  MetricsConfig  `json:"metrics"`
}

type GeneralConfig struct {
	LogLevel  string `json:"logLevel"`
	LogFile   string `json:"logFile,omitempty"` // optional log file path
	QueueSize int    `json:"queueSize"`         // job bus buffer size
}

// ServerConfig configures the inbound webhook server.
type ServerConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	CommandPath     string `json:"commandPath"`
	InteractivePath string `json:"interactivePath"`
}

// SlackConfig holds the Slack app credentials. An empty signing secret
// disables request verification (local testing only).
type SlackConfig struct {
	SigningSecret string `json:"signingSecret,omitempty"`
}

// DeliveryConfig bounds the chunked assessment delivery.
type DeliveryConfig struct {
	ChunkLimit int `json:"chunkLimit"` // max characters per outbound message
	Retries    int `json:"retries"`    // retries per failed chunk
}

type MemoryConfig struct {
	Enabled       bool   `json:"enabled"`
	DBPath        string `json:"dbPath"`
	RetentionDays int    `json:"retentionDays"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint"`
}

// DefaultConfigDir returns the default config directory (~/.healthbot).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".healthbot"
	}
	return filepath.Join(home, ".healthbot")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func Load(path string) (*Config, error) {
	path = ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.Memory.DBPath = ExpandPath(cfg.Memory.DBPath)
	cfg.General.LogFile = ExpandPath(cfg.General.LogFile)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset
// or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match // keep original if no env var and no default
		}
		return val
	})
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the config has valid values.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.General.LogLevel {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		errs = append(errs, "general.logLevel must be one of: debug, info, warn, error")
	}
	if cfg.General.QueueSize < 1 || cfg.General.QueueSize > 10000 {
		errs = append(errs, "general.queueSize must be between 1 and 10000")
	}

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		errs = append(errs, "server.port must be between 0 and 65535")
	}
	if !strings.HasPrefix(cfg.Server.CommandPath, "/") {
		errs = append(errs, "server.commandPath must start with /")
	}
	if !strings.HasPrefix(cfg.Server.InteractivePath, "/") {
		errs = append(errs, "server.interactivePath must start with /")
	}

	if cfg.Delivery.ChunkLimit < 1 || cfg.Delivery.ChunkLimit > 40000 {
		errs = append(errs, "delivery.chunkLimit must be between 1 and 40000")
	}
	if cfg.Delivery.Retries < 0 || cfg.Delivery.Retries > 5 {
		errs = append(errs, "delivery.retries must be between 0 and 5")
	}

	if cfg.Memory.RetentionDays < 1 {
		errs = append(errs, "memory.retentionDays must be >= 1")
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Endpoint, "/") {
		errs = append(errs, "metrics.endpoint must start with /")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ExpandPath resolves ~/ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
