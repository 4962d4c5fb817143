package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"notifybot/internal/domain"

	"gopkg.in/yaml.v3"
)

// Environment keys. The token and recipient are secrets and only ever
// come from the environment; the config file may set the rest.
const (
	EnvToken     = "BOT_TOKEN"
	EnvRecipient = "DM_USER_ID"
	EnvPlatform  = "NOTIFY_PLATFORM"
)

// RequiredKeys are validated before any network or I/O resource is
// acquired.
var RequiredKeys = []string{EnvToken, EnvRecipient}

// Config is the root configuration for notifybot.
type Config struct {
	Platform      string `yaml:"platform"`
	PageSize      int    `yaml:"pageSize"`
	DeleteDelayMS int    `yaml:"deleteDelayMs"`
	HistoryDBPath string `yaml:"historyDbPath"`
	LogLevel      string `yaml:"logLevel"`

	// Secrets, environment-only.
	Token       string `yaml:"-"`
	RecipientID string `yaml:"-"`
}

// DeleteDelay returns the pause inserted after each successful
// deletion.
func (c *Config) DeleteDelay() time.Duration {
	return time.Duration(c.DeleteDelayMS) * time.Millisecond
}

// DefaultConfigDir returns the default config directory (~/.notifybot).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notifybot"
	}
	return filepath.Join(home, ".notifybot")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

func Defaults() *Config {
	return &Config{
		Platform:      "discord",
		PageSize:      50,
		DeleteDelayMS: 1000,
		HistoryDBPath: filepath.Join(DefaultConfigDir(), "history.db"),
		LogLevel:      "info",
	}
}

// Load reads the optional YAML config file, overlays the environment,
// and validates the result. A missing file is not an error; defaults
// apply. The environment always wins over the file.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults apply
		case err != nil:
			return nil, domain.NewFault(domain.FaultConfig, "cannot read config file %s: %w", path, err)
		default:
			// Substitute environment variables: ${VAR} and ${VAR:-default}
			data = []byte(ExpandEnvVars(string(data)))
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, domain.NewFault(domain.FaultConfig, "cannot parse config file %s: %w", path, err)
			}
		}
	}

	cfg.Token = os.Getenv(EnvToken)
	cfg.RecipientID = os.Getenv(EnvRecipient)
	if p := os.Getenv(EnvPlatform); p != "" {
		cfg.Platform = p
	}
	cfg.HistoryDBPath = ExpandPath(cfg.HistoryDBPath)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MissingEnv reports which of the given keys are absent or empty in the
// process environment. Pure check, no side effects.
func MissingEnv(keys []string) []string {
	var missing []string
	for _, key := range keys {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

// RequireEnv fails with a config fault naming every missing key, not
// just the first. It must run before any client is constructed so a
// bad environment never leaves a half-initialized session behind.
func RequireEnv(keys ...string) error {
	if missing := MissingEnv(keys); len(missing) > 0 {
		return domain.NewFault(domain.FaultConfig,
			"missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks that the config has valid values.
func Validate(cfg *Config) error {
	var errs []string

	switch cfg.Platform {
	case "discord", "telegram":
	default:
		errs = append(errs, fmt.Sprintf("platform must be discord or telegram, got %q", cfg.Platform))
	}
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		errs = append(errs, "pageSize must be between 1 and 100")
	}
	if cfg.DeleteDelayMS < 0 {
		errs = append(errs, "deleteDelayMs must be >= 0")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "logLevel must be one of: debug, info, warn, error")
	}

	if len(errs) > 0 {
		return domain.NewFault(domain.FaultConfig,
			"config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is
// unset or empty.
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
