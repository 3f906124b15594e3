package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up from the working directory upwards.
const ConfigFileName = "locbot.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LOCBOT_"

// Config holds everything needed to run the bot.
type Config struct {
	// DataPath is the JSON document holding locations and the pin record.
	DataPath string `yaml:"data_path" env:"DATA_PATH"`
	// ConsoleChannelID is the game-console bridge channel; messages there are ignored.
	ConsoleChannelID string `yaml:"console_channel_id" env:"CONSOLE_CHANNEL_ID"`
	// RelayAuthorID is the trusted automated relay.
	RelayAuthorID string `yaml:"relay_author_id" env:"RELAY_AUTHOR_ID"`
	// BroadcastChannelID receives in-game renderings. Empty means ConsoleChannelID.
	BroadcastChannelID string `yaml:"broadcast_channel_id" env:"BROADCAST_CHANNEL_ID"`
	GatewayURL         string `yaml:"gateway_url" env:"GATEWAY_URL"`
	Token              string `yaml:"token" env:"TOKEN"`
	SelfID             string `yaml:"self_id" env:"SELF_ID"`
	LogLevel           string `yaml:"log_level" env:"LOG_LEVEL"`
	// Watch reloads the registry when the data file is edited by hand.
	Watch bool `yaml:"watch" env:"WATCH"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		DataPath:         "./data.json",
		ConsoleChannelID: "486984821600550933",
		RelayAuthorID:    "487659509238595592",
		SelfID:           "locbot",
		LogLevel:         "info",
		Watch:            true,
	}
}

// LoadConfig starts from DefaultConfig, applies the YAML file at path (if
// path is not empty) and then LOCBOT_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DataPath) == "" {
		errs = append(errs, errors.New("data_path is required"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
