package internal

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
)

// AllowedItemsPerPage are the page sizes offered for search results
var AllowedItemsPerPage = []int{10, 20, 25, 30, 50, 100}

// Config represents the ledger configuration
type Config struct {
	// Database configuration
	Database struct {
		Path           string `mapstructure:"path"`             // Path to SQLite database file
		MigrateOnStart bool   `mapstructure:"migrate_on_start"` // Apply pending migrations when opening
	} `mapstructure:"database"`

	// Ledger behaviour
	Ledger struct {
		RestLabel        string `mapstructure:"rest_label"`         // Name of the carry-over entry
		AllAccountsLabel string `mapstructure:"all_accounts_label"` // Name of the ALL pseudo-account
		StrictDelete     bool   `mapstructure:"strict_delete"`      // Report illegal deletes instead of skipping them
	} `mapstructure:"ledger"`

	// Search configuration
	Search struct {
		ItemsPerPage int `mapstructure:"items_per_page"`
	} `mapstructure:"search"`

	// Logging configuration
	Log struct {
		Level      string   `mapstructure:"level"`
		Dir        string   `mapstructure:"dir"`        // Empty logs to stderr only
		Components []string `mapstructure:"components"` // Empty enables every component
	} `mapstructure:"log"`

	// NATS event publishing
	NATS struct {
		Enabled       bool   `mapstructure:"enabled"`
		URL           string `mapstructure:"url"`
		SubjectPrefix string `mapstructure:"subject_prefix"`
		Username      string `mapstructure:"username"`
		Password      string `mapstructure:"password"`
		Token         string `mapstructure:"token"`
		// Stream selects JetStream publishing into the named stream. Empty publishes on core NATS.
		Stream string `mapstructure:"stream"`
		// Events lists subject patterns to announce, relative to the prefix
		Events []string `mapstructure:"events"`
	} `mapstructure:"nats"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// LoadConfig loads the configuration from various sources
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaultConfig(v)

	// Read configuration from file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("json")
	}

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Override with environment variables prefixed with LEDGER_
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Debug {
		config.Log.Level = "debug"
	}

	return &config, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var err error

	if strings.TrimSpace(c.Database.Path) == "" {
		err = multierr.Append(err, errors.New("database.path must not be empty"))
	}
	if strings.TrimSpace(c.Ledger.RestLabel) == "" {
		err = multierr.Append(err, errors.New("ledger.rest_label must not be empty"))
	}
	if !slices.Contains(AllowedItemsPerPage, c.Search.ItemsPerPage) {
		err = multierr.Append(err, fmt.Errorf("search.items_per_page must be one of %v, got %d",
			AllowedItemsPerPage, c.Search.ItemsPerPage))
	}
	if _, levelErr := ParseLogLevel(c.Log.Level); levelErr != nil {
		err = multierr.Append(err, fmt.Errorf("log.level: %w", levelErr))
	}
	if _, componentErr := ParseComponents(c.Log.Components); componentErr != nil {
		err = multierr.Append(err, fmt.Errorf("log.components: %w", componentErr))
	}
	if c.NATS.Enabled && strings.TrimSpace(c.NATS.URL) == "" {
		err = multierr.Append(err, errors.New("nats.url is required when nats.enabled is set"))
	}
	if c.NATS.Enabled && strings.TrimSpace(c.NATS.SubjectPrefix) == "" {
		err = multierr.Append(err, errors.New("nats.subject_prefix must not be empty"))
	}

	return err
}

// setDefaultConfig sets default configuration values
func setDefaultConfig(v *viper.Viper) {
	// Database defaults
	v.SetDefault("database.path", filepath.Join(DefaultConfigPath, "ledger.db"))
	v.SetDefault("database.migrate_on_start", true)

	// Ledger defaults
	v.SetDefault("ledger.rest_label", "Rest")
	v.SetDefault("ledger.all_accounts_label", "All accounts")
	v.SetDefault("ledger.strict_delete", true)

	v.SetDefault("search.items_per_page", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.components", []string{})

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.subject_prefix", "ledger")
	v.SetDefault("nats.stream", "")
	v.SetDefault("nats.events", []string{">"})

	// Debug mode default
	v.SetDefault("debug", false)
}

var secretSettings = []string{"nats.password", "nats.token"}

// Settings flattens the configuration into dotted keys as used in the config
// file. Secrets are masked.
func (c *Config) Settings() (map[string]interface{}, error) {
	var nested map[string]interface{}
	if err := mapstructure.Decode(*c, &nested); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	flat := make(map[string]interface{})
	flattenSettings("", nested, flat)

	for _, key := range secretSettings {
		if value, ok := flat[key].(string); ok && value != "" {
			flat[key] = "********"
		}
	}
	return flat, nil
}

func flattenSettings(prefix string, in map[string]interface{}, out map[string]interface{}) {
	for key, value := range in {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			flattenSettings(key, nested, out)
			continue
		}
		out[key] = value
	}
}
