// Package config loads runtime settings from the environment, with an
// optional .env file picked up from the working directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/FocuswithJustin/Bibliotheca/internal/logging"
)

// Config holds the resolved runtime settings. CLI flags override these.
type Config struct {
	DataFile  string // path of the XML source document
	ExportDir string // directory export files are written to
	LogLevel  string // debug, info, warn, error
	LogFormat string // text or json
}

// Load reads settings from the environment. A missing .env file is not an
// error; plain environment variables still apply.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logging.Debug("no .env file found, using environment variables")
	}

	return Config{
		DataFile:  envOr("BIBLIO_DATA_FILE", filepath.Join("DataSource", "library_data.xml")),
		ExportDir: envOr("BIBLIO_EXPORT_DIR", "Exports"),
		LogLevel:  envOr("BIBLIO_LOG_LEVEL", "info"),
		LogFormat: envOr("BIBLIO_LOG_FORMAT", "text"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
