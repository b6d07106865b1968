package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings that do not come from positional arguments
type Config struct {
	CorrectedFolder string        // OFFSETHOURS_CORRECTED_FOLDER
	ExifTool        string        // OFFSETHOURS_EXIFTOOL
	Journal         string        // OFFSETHOURS_JOURNAL, empty disables it
	LogLevel        zapcore.Level // OFFSETHOURS_LOG_LEVEL
}

const (
	defaultCorrectedFolder = "Corrected"
	defaultExifTool        = "exiftool"
)

// loadConfig loads envFile, if it exists, into the environment and reads
// the settings from there. Variables already set win over the file.
func loadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		CorrectedFolder: defaultCorrectedFolder,
		ExifTool:        defaultExifTool,
		Journal:         strings.TrimSpace(getenv("OFFSETHOURS_JOURNAL")),
		LogLevel:        zapcore.InfoLevel,
	}

	if v := strings.TrimSpace(getenv("OFFSETHOURS_CORRECTED_FOLDER")); v != "" {
		cfg.CorrectedFolder = v
	}
	if strings.ContainsAny(cfg.CorrectedFolder, `/\`) || cfg.CorrectedFolder == "." || cfg.CorrectedFolder == ".." {
		return cfg, fmt.Errorf("OFFSETHOURS_CORRECTED_FOLDER must be a plain folder name, got %q", cfg.CorrectedFolder)
	}

	if v := strings.TrimSpace(getenv("OFFSETHOURS_EXIFTOOL")); v != "" {
		cfg.ExifTool = v
	}

	if v := strings.TrimSpace(getenv("OFFSETHOURS_LOG_LEVEL")); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("OFFSETHOURS_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}
