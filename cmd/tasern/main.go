package main

import (
	"os"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
)

func main() {
	checkEnvVars([]string{constants.EnvSessionSecret})

	// Battle configuration file (required). Path may be provided via
	// TASERN_CONFIG env var or defaults to ./tasern_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./tasern_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via TASERN_DB. Default to a
	// data/ directory for local development.
	dbPath := os.Getenv(constants.EnvDatabasePath)
	if dbPath == "" {
		dbPath = "./data/" + cfg.DatabasePath
	}
	repo := createRepositoryOrExit(dbPath, cfg)

	runServer(repo, cfg)
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
