package rebalance

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "Defaults with an endpoint",
			mutate: func(*Config) {},
		},
		{
			name:    "No master addresses",
			mutate:  func(c *Config) { c.MasterAddresses = nil },
			wantErr: true,
		},
		{
			name:    "Blank master address",
			mutate:  func(c *Config) { c.MasterAddresses = []string{"master-1:7051", ""} },
			wantErr: true,
		},
		{
			name:    "Zero moves per server",
			mutate:  func(c *Config) { c.MaxMovesPerServer = 0 },
			wantErr: true,
		},
		{
			name:    "Zero staleness interval",
			mutate:  func(c *Config) { c.MaxStalenessInterval = 0 },
			wantErr: true,
		},
		{
			name:    "Negative run time",
			mutate:  func(c *Config) { c.MaxRunTime = -time.Second },
			wantErr: true,
		},
		{
			name:   "Unbounded run time",
			mutate: func(c *Config) { c.MaxRunTime = 0 },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.MasterAddresses = []string{"master-1:7051"}
			test.mutate(&cfg)
			err := cfg.Validate()
			if test.wantErr && err == nil {
				t.Errorf("Expected a validation error, got nil")
			}
			if !test.wantErr && err != nil {
				t.Errorf("Expected a valid config, got error: %v", err)
			}
		})
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rebalancer.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
masterAddresses:
  - master-1:7051
  - master-2:7051
tableFilters:
  - orders
maxMovesPerServer: 3
maxStalenessInterval: 90s
maxRunTime: 1h30m
moveRF1Replicas: true
outputReplicaDistributionDetails: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if len(cfg.MasterAddresses) != 2 || cfg.MasterAddresses[0] != "master-1:7051" {
		t.Errorf("Expected two master addresses, got %v", cfg.MasterAddresses)
	}
	if len(cfg.TableFilters) != 1 || cfg.TableFilters[0] != "orders" {
		t.Errorf("Expected table filter [orders], got %v", cfg.TableFilters)
	}
	if cfg.MaxMovesPerServer != 3 {
		t.Errorf("Expected maxMovesPerServer 3, got %d", cfg.MaxMovesPerServer)
	}
	if cfg.MaxStalenessInterval != 90*time.Second {
		t.Errorf("Expected maxStalenessInterval 90s, got %s", cfg.MaxStalenessInterval)
	}
	if cfg.MaxRunTime != 90*time.Minute {
		t.Errorf("Expected maxRunTime 1h30m, got %s", cfg.MaxRunTime)
	}
	if !cfg.MoveRF1Replicas || !cfg.OutputReplicaDistributionDetails {
		t.Errorf("Expected both boolean knobs set, got %+v", cfg)
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeConfigFile(t, `
masterAddresses:
  - master-1:7051
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.MaxMovesPerServer != DefaultMaxMovesPerServer {
		t.Errorf("Expected default maxMovesPerServer, got %d", cfg.MaxMovesPerServer)
	}
	if cfg.MaxStalenessInterval != DefaultMaxStalenessInterval {
		t.Errorf("Expected default maxStalenessInterval, got %s", cfg.MaxStalenessInterval)
	}
	if cfg.MaxRunTime != 0 {
		t.Errorf("Expected unbounded run time by default, got %s", cfg.MaxRunTime)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("Expected an error for a missing file")
	}

	bad := writeConfigFile(t, "maxStalenessInterval: not-a-duration\n")
	if _, err := LoadConfig(bad); err == nil {
		t.Errorf("Expected an error for a malformed duration")
	}
}
