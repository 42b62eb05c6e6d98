package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdconv/internal/config"
)

// envPrefix marks the variables read by the CLI.
const envPrefix = "MDCONV_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDCONV_CONFIG: config file name or path
	Direction  string        // MDCONV_DIRECTION: html2md or md2html
	Style      string        // MDCONV_STYLE: stylesheet name or path
	Timeout    time.Duration // MDCONV_TIMEOUT: per-file timeout

	InputDir  string // MDCONV_INPUT_DIR: default input directory
	OutputDir string // MDCONV_OUTPUT_DIR: default output directory
	AssetPath string // MDCONV_ASSET_PATH: custom style directory
	Workers   int    // MDCONV_WORKERS: parallel workers
}

// knownEnvVars lists valid MDCONV_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDCONV_CONFIG":     true,
	"MDCONV_DIRECTION":  true,
	"MDCONV_STYLE":      true,
	"MDCONV_TIMEOUT":    true,
	"MDCONV_INPUT_DIR":  true,
	"MDCONV_OUTPUT_DIR": true,
	"MDCONV_ASSET_PATH": true,
	"MDCONV_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable or non-positive timeout and worker values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDCONV_CONFIG"),
		Direction:  os.Getenv("MDCONV_DIRECTION"),
		Style:      os.Getenv("MDCONV_STYLE"),
		InputDir:   os.Getenv("MDCONV_INPUT_DIR"),
		OutputDir:  os.Getenv("MDCONV_OUTPUT_DIR"),
		AssetPath:  os.Getenv("MDCONV_ASSET_PATH"),
	}

	if timeout := os.Getenv("MDCONV_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MDCONV_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDCONV_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Direction != "" && cfg.Direction == "" {
		cfg.Direction = env.Direction
	}
	if env.Style != "" && cfg.Style == "" {
		cfg.Style = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
