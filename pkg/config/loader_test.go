package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_LoadDefaults(t *testing.T) {
	cfg, err := NewLoader(WithConfigPaths()).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Log.Level)
	}
	if cfg.CostScaling.Alpha != 5 {
		t.Errorf("expected cost_scaling.alpha 5, got %d", cfg.CostScaling.Alpha)
	}
	if cfg.NetworkSimplex.MinBlockSize != 10 {
		t.Errorf("expected network_simplex.min_block_size 10, got %d", cfg.NetworkSimplex.MinBlockSize)
	}
	if !cfg.NetworkSimplex.WarmStart {
		t.Error("expected network_simplex.warm_start true by default")
	}
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
log:
  level: debug
cost_scaling:
  alpha: 8
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewLoader(WithConfigPaths(configPath))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Log.Level)
	}
	if cfg.CostScaling.Alpha != 8 {
		t.Errorf("expected cost_scaling.alpha 8, got %d", cfg.CostScaling.Alpha)
	}
	// Unset values keep their defaults.
	if cfg.NetworkSimplex.MinBlockSize != 10 {
		t.Errorf("expected network_simplex.min_block_size 10, got %d", cfg.NetworkSimplex.MinBlockSize)
	}
}

func TestLoader_LoadFromEnv(t *testing.T) {
	os.Setenv("FLOWCORE_LOG__LEVEL", "warn")
	os.Setenv("FLOWCORE_COST_SCALING__ALPHA", "7")
	defer func() {
		os.Unsetenv("FLOWCORE_LOG__LEVEL")
		os.Unsetenv("FLOWCORE_COST_SCALING__ALPHA")
	}()

	cfg, err := NewLoader(WithConfigPaths()).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Log.Level)
	}
	if cfg.CostScaling.Alpha != 7 {
		t.Errorf("expected cost_scaling.alpha 7, got %d", cfg.CostScaling.Alpha)
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
log:
  level: error
`
	os.WriteFile(configPath, []byte(configContent), 0644)

	os.Setenv("FLOWCORE_LOG__LEVEL", "debug")
	defer os.Unsetenv("FLOWCORE_LOG__LEVEL")

	cfg, err := NewLoader(WithConfigPaths(configPath)).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected env override 'debug', got %s", cfg.Log.Level)
	}
}

func TestLoader_WithEnvPrefix(t *testing.T) {
	os.Setenv("CUSTOM_LOG__LEVEL", "warn")
	defer os.Unsetenv("CUSTOM_LOG__LEVEL")

	cfg, err := NewLoader(WithConfigPaths(), WithEnvPrefix("CUSTOM_")).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected 'warn', got %s", cfg.Log.Level)
	}
}

func TestMustLoad_Success(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("MustLoad should not panic with valid config")
		}
	}()

	cfg := MustLoad(WithConfigPaths())
	if cfg == nil {
		t.Error("expected non-nil config")
	}
}

func TestLoad_Simple(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg == nil {
		t.Error("expected non-nil config")
	}
}

func TestLoader_ConfigEnvVar(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom-config.yaml")

	configContent := `
cost_scaling:
  alpha: 9
`
	os.WriteFile(configPath, []byte(configContent), 0644)

	os.Setenv("FLOWCORE_CONFIG_PATH", configPath)
	defer os.Unsetenv("FLOWCORE_CONFIG_PATH")

	cfg, err := NewLoader(WithConfigPaths()).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.CostScaling.Alpha != 9 {
		t.Errorf("expected cost_scaling.alpha 9, got %d", cfg.CostScaling.Alpha)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.CostScaling.Alpha != 5 {
		t.Errorf("expected cost_scaling.alpha 5, got %d", cfg.CostScaling.Alpha)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() config should validate cleanly: %v", err)
	}
}
