package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/albertocavalcante/ideinfo/internal/log"
)

// ConfigFileName is the name of the project-level config file.
const ConfigFileName = "ideinfo.toml"

// ConfigDirName is the name of the project-level config directory.
const ConfigDirName = ".ideinfo"

// GlobalConfigDir is the name of the global config directory inside user's config.
const GlobalConfigDir = "ideinfo"

// Load loads configuration from all layers in order of precedence:
//  1. Built-in defaults
//  2. Global user config (~/.config/ideinfo/config.toml)
//  3. Project config (.ideinfo/config.toml or ideinfo.toml)
//  4. Environment variables (IDEINFO_*)
//
// CLI flags are applied separately after Load() returns.
func Load() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	return LoadFrom(wd)
}

// LoadFrom loads configuration starting from a specific directory.
func LoadFrom(dir string) *Config {
	cfg := NewConfig()

	if globalCfg := loadGlobalConfig(); globalCfg != nil {
		cfg.Merge(globalCfg)
	}

	if dir != "" {
		if projectCfg := loadProjectConfigFrom(dir); projectCfg != nil {
			cfg.Merge(projectCfg)
		}
	}

	applyEnvironmentVariables(cfg)

	return cfg
}

// LoadFile loads defaults, then the given file, then environment variables.
// Unlike the search layers, a missing or malformed file is an error.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fileCfg Config
	if _, err := toml.Decode(string(data), &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg := NewConfig()
	cfg.Merge(&fileCfg)
	applyEnvironmentVariables(cfg)
	return cfg, nil
}

// loadGlobalConfig loads the global user configuration.
func loadGlobalConfig() *Config {
	path := GetGlobalConfigPath()
	if path == "" {
		return nil
	}
	return loadConfigFile(path)
}

// loadProjectConfigFrom looks for project configuration starting from the given directory.
func loadProjectConfigFrom(dir string) *Config {
	current := dir
	for {
		for _, path := range GetProjectConfigPaths(current) {
			if cfg := loadConfigFile(path); cfg != nil {
				return cfg
			}
		}

		// Stop at filesystem root or git/bazel workspace root
		if isWorkspaceRoot(current) {
			break
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return nil
}

// isWorkspaceRoot checks if the directory is a workspace root (has .git, WORKSPACE, or MODULE.bazel).
func isWorkspaceRoot(dir string) bool {
	markers := []string{".git", "WORKSPACE", "WORKSPACE.bazel", "MODULE.bazel"}
	for _, marker := range markers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// loadConfigFile loads a configuration from a TOML file, or nil if it is
// missing or malformed. Malformed files are logged and skipped.
func loadConfigFile(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		log.Warn("ignoring malformed config", "path", path, "err", err)
		return nil
	}

	return &cfg
}

// applyEnvironmentVariables applies IDEINFO_* environment variables to the config.
func applyEnvironmentVariables(cfg *Config) {
	if v := os.Getenv("IDEINFO_INPUT_FORMAT"); v != "" {
		cfg.InputFormat = strings.TrimSpace(v)
	}
	if v := os.Getenv("IDEINFO_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = strings.TrimSpace(v)
	}

	applyBoolEnv("IDEINFO_JSON_MULTILINE", &cfg.JSON.Multiline)
	applyBoolEnv("IDEINFO_JSON_USE_PROTO_NAMES", &cfg.JSON.UseProtoNames)
	applyBoolEnv("IDEINFO_JSON_EMIT_UNPOPULATED", &cfg.JSON.EmitUnpopulated)

	if v := os.Getenv("IDEINFO_VERBOSITY"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Log.Verbosity = &n
		}
	}
	if v := os.Getenv("IDEINFO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.TrimSpace(v)
	}
}

// applyBoolEnv applies a boolean environment variable to a pointer.
func applyBoolEnv(envVar string, target **bool) {
	if v := os.Getenv(envVar); v != "" {
		v = strings.ToLower(v)
		if v == "true" || v == "1" || v == "yes" {
			t := true
			*target = &t
		} else if v == "false" || v == "0" || v == "no" {
			f := false
			*target = &f
		}
	}
}

// GetGlobalConfigPath returns the path to the global config file.
func GetGlobalConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, GlobalConfigDir, "config.toml")
}

// GetProjectConfigPaths returns potential project config paths for a given directory.
func GetProjectConfigPaths(dir string) []string {
	return []string{
		filepath.Join(dir, ConfigDirName, "config.toml"),
		filepath.Join(dir, ConfigFileName),
	}
}
