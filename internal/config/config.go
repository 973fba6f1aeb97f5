package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/f3rmion/tbls/tbls"
)

const (
	configSubdir   = "config"
	configFileName = "tblsd_config.json"
)

// Environment overrides, applied after the config file is read.
const (
	EnvLogLevel   = "TBLSD_LOG_LEVEL"
	EnvLogFormat  = "TBLSD_LOG_FORMAT"
	EnvListenPort = "TBLSD_LISTEN_PORT"
	EnvHasher     = "TBLSD_HASHER"
)

//go:embed default_config.json
var defaultConfigJSON []byte

func validateConfig(cfg *Config) error {
	if cfg.LogLevel < 0 || cfg.LogLevel > 5 {
		return fmt.Errorf("log level must be between 0 and 5")
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("log format must be 'json' or 'console'")
	}

	if cfg.ListenPort == 0 {
		cfg.ListenPort = 8000
	}
	if cfg.ListenPort < 0 || cfg.ListenPort > 65535 {
		return fmt.Errorf("listen port must be between 1 and 65535")
	}
	if cfg.ReadTimeoutSeconds == 0 {
		cfg.ReadTimeoutSeconds = 10
	}
	if cfg.WriteTimeoutSeconds == 0 {
		cfg.WriteTimeoutSeconds = 30
	}

	if len(cfg.ParticipantIDs) == 0 {
		cfg.ParticipantIDs = []uint64{1, 2}
	}
	if len(cfg.ParticipantIDs) != 2 {
		return fmt.Errorf("participant ids must name exactly two participants")
	}
	if cfg.ParticipantIDs[0] == 0 || cfg.ParticipantIDs[1] == 0 {
		return fmt.Errorf("participant ids must be non-zero")
	}
	if cfg.ParticipantIDs[0] == cfg.ParticipantIDs[1] {
		return fmt.Errorf("participant ids must differ")
	}

	if cfg.Hasher == "" {
		cfg.Hasher = "suite"
	}
	if _, ok := tbls.HasherByName(cfg.Hasher); !ok {
		return fmt.Errorf("unknown hasher %q", cfg.Hasher)
	}

	return nil
}

// Save writes the given config to <basePath>/config/tblsd_config.json.
func Save(cfg *Config, basePath string) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	configDir := filepath.Join(basePath, configSubdir)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, configFileName)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads the config from <basePath>/config/tblsd_config.json, applies
// environment overrides and validates the result.
func Load(basePath string) (Config, error) {
	configFile := filepath.Join(basePath, configSubdir, configFileName)
	data, err := os.ReadFile(filepath.Clean(configFile))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to the embedded defaults when
// basePath holds no config file.
func LoadOrDefault(basePath string) (Config, error) {
	cfg, err := Load(basePath)
	if err == nil {
		return cfg, nil
	}
	configFile := filepath.Join(basePath, configSubdir, configFileName)
	if _, statErr := os.Stat(configFile); !os.IsNotExist(statErr) {
		return Config{}, err
	}

	def, err := LoadDefaultConfig()
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(def); err != nil {
		return Config{}, err
	}
	if err := validateConfig(def); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return *def, nil
}

// LoadDefaultConfig loads the default configuration from embedded JSON
func LoadDefaultConfig() (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(defaultConfigJSON, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default config: %w", err)
	}
	return &cfg, nil
}

// LoadEnvFiles loads variables from the given .env files, or from ./.env
// when none are given. Variables already set in the environment win.
// A missing default .env file is not an error.
func LoadEnvFiles(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return nil
		}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		level, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvListenPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvListenPort, err)
		}
		cfg.ListenPort = port
	}
	if v, ok := os.LookupEnv(EnvHasher); ok {
		cfg.Hasher = v
	}
	return nil
}
