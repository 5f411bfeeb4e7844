package internal

import (
	"fmt"

	"github.com/joho/godotenv"
)

// Init loads .env, the configuration and the global logger
func Init(configFile string) (*Config, *Logger, error) {
	// A missing .env file is fine; the environment may be set already
	_ = godotenv.Load()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := ParseLogLevel(cfg.Log.Level)
	components, _ := ParseComponents(cfg.Log.Components)

	if err := InitGlobalLogger(cfg.Log.Dir, level, components); err != nil {
		// Fall back to the console logger
		logger := GetLogger()
		logger.SetLevel(level)
		logger.Error(ComponentGeneral, "Error initializing logger: %v", err)
	}

	logger := GetLogger()
	logger.Debug(ComponentConfig, "configuration loaded, database at %s", cfg.Database.Path)

	return cfg, logger, nil
}
