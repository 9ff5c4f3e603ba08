package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected Addr=':8080', got '%s'", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Expected ReadTimeout=10s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected ShutdownTimeout=5s, got %v", cfg.Server.ShutdownTimeout)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("Unexpected log defaults: %+v", cfg.Log)
	}
}

func TestParse_MergesOverDefaults(t *testing.T) {
	cfg, _ := Default()
	doc := `
server:
  addr: "127.0.0.1:9090"
log:
  level: debug
variables:
  Octopus.Release.Number: "1.0.0"
  Project:
    Owner: alice
`
	if err := Parse([]byte(doc), cfg); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9090" {
		t.Errorf("Expected Addr='127.0.0.1:9090', got '%s'", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("Expected default ReadTimeout to survive, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("Unexpected log config: %+v", cfg.Log)
	}
	if cfg.Variables["Octopus.Release.Number"] != "1.0.0" {
		t.Errorf("Unexpected variables: %v", cfg.Variables)
	}
	project, ok := cfg.Variables["Project"].(map[string]any)
	if !ok || project["Owner"] != "alice" {
		t.Errorf("Expected nested Project.Owner=alice, got %v", cfg.Variables["Project"])
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("STEPKIT_ADDR", ":7070")
	t.Setenv("DEPLOYER", "bob")

	cfg, _ := Default()
	doc := `
server:
  addr: ${STEPKIT_ADDR}
  readTimeout: ${STEPKIT_READ_TIMEOUT:30s}
variables:
  Deployer: ${DEPLOYER}
  Release: ${ Octopus.Release.Number }
`
	if err := Parse([]byte(doc), cfg); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("Expected Addr=':7070', got '%s'", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Expected ReadTimeout=30s from default, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Variables["Deployer"] != "bob" {
		t.Errorf("Expected Deployer=bob, got %v", cfg.Variables["Deployer"])
	}
	if cfg.Variables["Release"] != "${ Octopus.Release.Number }" {
		t.Errorf("Expected step reference to stay literal, got %v", cfg.Variables["Release"])
	}
}

func TestParse_MissingRequiredEnv(t *testing.T) {
	cfg, _ := Default()
	err := Parse([]byte("server:\n  addr: ${STEPKIT_TEST_UNSET_VAR}\n"), cfg)
	if err == nil {
		t.Fatal("Expected error for unset env var, got nil")
	}
	if !strings.Contains(err.Error(), "STEPKIT_TEST_UNSET_VAR") {
		t.Errorf("Expected error to name the variable, got: %v", err)
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		rule string
	}{
		{"bad level", "log:\n  level: loud\n", "oneof"},
		{"bad format", "log:\n  format: xml\n", "oneof"},
		{"bad addr", "server:\n  addr: localhost\n", "listen_addr"},
		{"bad port", "server:\n  addr: \":notaport\"\n", "listen_addr"},
		{"short timeout", "server:\n  readTimeout: 10ms\n", "gte"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, _ := Default()
			err := Parse([]byte(tt.doc), cfg)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), "rule: "+tt.rule) {
				t.Errorf("Expected rule '%s' in error, got: %v", tt.rule, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stepkit.yaml")
	if err := os.WriteFile(path, []byte("log:\n  format: json\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected Format=json, got %s", cfg.Log.Format)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Expected optional missing file to be ignored, got: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected defaults, got %+v", cfg.Server)
	}

	_, err = Load(path, false)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist for required file, got %v", err)
	}
}

func TestLogConfig_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info to be filtered at warn level, got: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("Expected JSON warn line, got: %s", out)
	}
}
