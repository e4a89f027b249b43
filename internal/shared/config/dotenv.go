package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"resume-matcher/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment are never overridden.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			telemetry.Warn("config.env_file_skipped", map[string]any{"path": path, "error": err.Error()})
		}
	}
}
