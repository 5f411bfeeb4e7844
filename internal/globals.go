package internal

import (
	"os"
	"path/filepath"
)

var (
	DefaultAppName          = "fdledger"
	DefaultAppCMDShortCut   = "fdl"
	DefaultConfigFolderName = DefaultAppName
	DefaultConfigPath       = filepath.Join(os.Getenv("HOME"), ".config", DefaultConfigFolderName)
	DefaultConfigFile       = filepath.Join(DefaultConfigPath, "config.json")

	// EnvPrefix prefixes every environment override, e.g. LEDGER_DATABASE_PATH
	EnvPrefix = "LEDGER"
)
