package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Stable.Dir != DefaultStableDir {
		t.Errorf("Stable.Dir = %q, want %q", cfg.Stable.Dir, DefaultStableDir)
	}
	if cfg.Stable.GCThreshold != DefaultGCThreshold {
		t.Errorf("GCThreshold = %v", cfg.Stable.GCThreshold)
	}
	if !cfg.Stable.SyncWrites {
		t.Error("SyncWrites should default to true")
	}
	if cfg.Ledger.TransferFeeE8s != 10_000 {
		t.Errorf("TransferFeeE8s = %d", cfg.Ledger.TransferFeeE8s)
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Metrics.Addr != DefaultMetricsAddr {
		t.Errorf("Metrics.Addr = %q", cfg.Metrics.Addr)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"in memory needs no dir", func(c *Config) { c.Stable.InMemory = true; c.Stable.Dir = "" }, ""},
		{"dir required", func(c *Config) { c.Stable.Dir = "" }, "stable.dir is required"},
		{"threshold zero", func(c *Config) { c.Stable.GCThreshold = 0 }, "gc_threshold"},
		{"threshold one", func(c *Config) { c.Stable.GCThreshold = 1 }, "gc_threshold"},
		{"bad interval", func(c *Config) { c.Stable.GCInterval = "often" }, "gc_interval"},
		{"zero fee", func(c *Config) { c.Ledger.TransferFeeE8s = 0 }, "transfer_fee_e8s"},
		{"bad admin", func(c *Config) { c.Guards.Admins = []string{"not-a-principal"} }, "guards.admins"},
		{"good admin", func(c *Config) { c.Guards.Admins = []string{"ryjl3-tyaaa-aaaaa-aaaba-cai"} }, ""},
		{"negative rate", func(c *Config) { c.Calls.RatePerSecond = -1 }, "rate_per_second"},
		{"rate without burst", func(c *Config) { c.Calls.RatePerSecond = 5; c.Calls.Burst = 0 }, "calls.burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Stable.Dir = filepath.Join(t.TempDir(), "stable")
			tt.mutate(cfg)

			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Verify() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "canikit.yaml")
	content := "stable:\n  in_memory: true\nledger:\n  memo: 7\nguards:\n  admins:\n    - ryjl3-tyaaa-aaaaa-aaaba-cai\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CANIKIT_LOG_LEVEL", "debug")

	cfg, err := Load(path, map[string]any{"metrics.addr": "127.0.0.1:0"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Stable.InMemory || cfg.Ledger.Memo != 7 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Ledger.TransferFeeE8s != DefaultTransferFeeE8s {
		t.Errorf("default fee lost: %d", cfg.Ledger.TransferFeeE8s)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Metrics.Addr != "127.0.0.1:0" {
		t.Errorf("Metrics.Addr = %q", cfg.Metrics.Addr)
	}
	admins, _ := cfg.Guards.Principals()
	if len(admins) != 1 || admins[0].String() != "ryjl3-tyaaa-aaaaa-aaaba-cai" {
		t.Errorf("admins = %v", admins)
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Guards.Admins = []string{"ryjl3-tyaaa-aaaaa-aaaba-cai"}

	s := Sanitize(cfg)
	if cfg.Guards.Admins[0] != "ryjl3-tyaaa-aaaaa-aaaba-cai" {
		t.Error("original config modified")
	}
	if s.Guards.Admins[0] != "ryjl3...cai" {
		t.Errorf("sanitized admin = %q", s.Guards.Admins[0])
	}
}

func TestStableSection_Engine(t *testing.T) {
	cfg := Default().Stable
	e := cfg.Engine()
	if e.Dir != cfg.Dir || e.GCInterval != cfg.GCInterval || e.CacheSize != cfg.CacheSize || !e.SyncWrites {
		t.Errorf("Engine() = %+v", e)
	}
}
