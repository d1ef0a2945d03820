package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/albertocavalcante/ideinfo/internal/log"
	"github.com/albertocavalcante/ideinfo/pkg/ideinfo"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.InputFormat != "binary" {
		t.Errorf("input format should default to 'binary', got %q", cfg.InputFormat)
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("output format should default to 'text', got %q", cfg.OutputFormat)
	}
	if cfg.LogVerbosity() != 1 {
		t.Errorf("verbosity should default to 1, got %d", cfg.LogVerbosity())
	}

	opts, err := cfg.MarshalOptions()
	if err != nil {
		t.Fatalf("MarshalOptions() error = %v", err)
	}
	want := ideinfo.MarshalOptions{Format: ideinfo.FormatText, Multiline: true}
	if opts != want {
		t.Errorf("MarshalOptions() = %+v, want %+v", opts, want)
	}
}

func TestMerge(t *testing.T) {
	base := NewConfig()
	trueVal := true
	verbosity := 3
	other := &Config{
		OutputFormat: "json",
		JSON:         JSONConfig{UseProtoNames: &trueVal},
		Log:          LogConfig{Verbosity: &verbosity},
	}

	base.Merge(other)
	base.Merge(nil)

	if base.OutputFormat != "json" {
		t.Errorf("output format should be 'json', got %q", base.OutputFormat)
	}
	if base.InputFormat != "binary" {
		t.Errorf("unset input format should keep default, got %q", base.InputFormat)
	}
	if !isTrue(base.JSON.UseProtoNames) {
		t.Error("use_proto_names should be true after merge")
	}
	if !isTrue(base.JSON.Multiline) {
		t.Error("unset multiline should keep default")
	}
	if base.LogVerbosity() != 3 {
		t.Errorf("verbosity should be 3, got %d", base.LogVerbosity())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"textproto alias", func(c *Config) { c.InputFormat = "textproto" }, false},
		{"bad input", func(c *Config) { c.InputFormat = "yaml" }, true},
		{"bad output", func(c *Config) { c.OutputFormat = "xml" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "logfmt" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	configContent := `
input_format = "json"
output_format = "binary"

[json]
multiline = false
emit_unpopulated = true

[log]
verbosity = 4
format = "json"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := loadConfigFile(configPath)
	if cfg == nil {
		t.Fatal("loadConfigFile returned nil")
	}

	if cfg.InputFormat != "json" {
		t.Errorf("input format should be 'json', got %q", cfg.InputFormat)
	}
	if cfg.JSON.Multiline == nil || *cfg.JSON.Multiline {
		t.Error("multiline should be explicitly false")
	}
	if !isTrue(cfg.JSON.EmitUnpopulated) {
		t.Error("emit_unpopulated should be true")
	}
	if cfg.JSON.UseProtoNames != nil {
		t.Error("use_proto_names should be unset")
	}
	if cfg.LogVerbosity() != 4 || cfg.Log.Format != "json" {
		t.Errorf("log = %d/%q, want 4/json", cfg.LogVerbosity(), cfg.Log.Format)
	}

	if loadConfigFile(filepath.Join(tmpDir, "missing.toml")) != nil {
		t.Error("missing file should load as nil")
	}
}

func TestLoadConfigFile_MalformedIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.Init(log.VerbosityWarn, "text", &buf)
	t.Cleanup(func() { log.Init(log.VerbosityWarn, "text", os.Stderr) })

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`input_format = `), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if loadConfigFile(path) != nil {
		t.Error("malformed file should load as nil")
	}
	out := buf.String()
	if !strings.Contains(out, "ignoring malformed config") || !strings.Contains(out, path) {
		t.Errorf("malformed config should be logged with its path, got: %s", out)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	good := filepath.Join(tmpDir, "good.toml")
	if err := os.WriteFile(good, []byte(`output_format = "json"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	cfg, err := LoadFile(good)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.OutputFormat != "json" || cfg.InputFormat != "binary" {
		t.Errorf("LoadFile() = %q/%q, want binary/json", cfg.InputFormat, cfg.OutputFormat)
	}

	bad := filepath.Join(tmpDir, "bad.toml")
	if err := os.WriteFile(bad, []byte(`output_format = `), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Error("malformed file should fail")
	}
	if _, err := LoadFile(filepath.Join(tmpDir, "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestApplyEnvironmentVariables(t *testing.T) {
	cfg := NewConfig()

	t.Setenv("IDEINFO_INPUT_FORMAT", "text")
	t.Setenv("IDEINFO_OUTPUT_FORMAT", " json ")
	t.Setenv("IDEINFO_JSON_MULTILINE", "no")
	t.Setenv("IDEINFO_JSON_USE_PROTO_NAMES", "1")
	t.Setenv("IDEINFO_VERBOSITY", "3")
	t.Setenv("IDEINFO_LOG_FORMAT", "json")

	applyEnvironmentVariables(cfg)

	if cfg.InputFormat != "text" || cfg.OutputFormat != "json" {
		t.Errorf("formats = %q/%q, want text/json", cfg.InputFormat, cfg.OutputFormat)
	}
	if isTrue(cfg.JSON.Multiline) {
		t.Error("multiline should be disabled via env var")
	}
	if !isTrue(cfg.JSON.UseProtoNames) {
		t.Error("use_proto_names should be enabled via env var")
	}
	if cfg.LogVerbosity() != 3 {
		t.Errorf("verbosity should be 3, got %d", cfg.LogVerbosity())
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format should be json, got %q", cfg.Log.Format)
	}
}

func TestApplyEnvironmentVariables_IgnoresGarbage(t *testing.T) {
	cfg := NewConfig()

	t.Setenv("IDEINFO_JSON_MULTILINE", "maybe")
	t.Setenv("IDEINFO_VERBOSITY", "loud")

	applyEnvironmentVariables(cfg)

	if !isTrue(cfg.JSON.Multiline) {
		t.Error("unrecognized bool should keep default")
	}
	if cfg.LogVerbosity() != 1 {
		t.Errorf("unparsable verbosity should keep default, got %d", cfg.LogVerbosity())
	}
}

func TestProjectConfigSearch(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "project", "crates", "parser")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatalf("failed to create project dir: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "project", "MODULE.bazel"), nil, 0o644); err != nil {
		t.Fatalf("failed to write MODULE.bazel: %v", err)
	}

	configPath := filepath.Join(tmpDir, "project", ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`input_format = "json"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := loadProjectConfigFrom(projectDir)
	if cfg == nil {
		t.Fatal("loadProjectConfigFrom returned nil")
	}
	if cfg.InputFormat != "json" {
		t.Errorf("input format should be 'json', got %q", cfg.InputFormat)
	}
}

func TestProjectConfigSearch_PrefersConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ConfigDirName), 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigDirName, "config.toml"), []byte(`output_format = "json"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`output_format = "binary"`), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := loadProjectConfigFrom(tmpDir)
	if cfg == nil || cfg.OutputFormat != "json" {
		t.Errorf(".ideinfo/config.toml should win over ideinfo.toml, got %+v", cfg)
	}
}

func TestWorkspaceRootDetection(t *testing.T) {
	for _, marker := range []string{"WORKSPACE", "WORKSPACE.bazel", "MODULE.bazel"} {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, marker), nil, 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", marker, err)
		}
		if !isWorkspaceRoot(dir) {
			t.Errorf("directory with %s should be workspace root", marker)
		}
	}

	gitRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(gitRoot, ".git"), 0o755); err != nil {
		t.Fatalf("failed to create .git dir: %v", err)
	}
	if !isWorkspaceRoot(gitRoot) {
		t.Error("directory with .git should be workspace root")
	}

	if isWorkspaceRoot(t.TempDir()) {
		t.Error("empty directory should not be workspace root")
	}
}
