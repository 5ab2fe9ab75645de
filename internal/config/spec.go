package config

import "github.com/yndnr/canikit-go/internal/stable"

// Config is the root configuration.
type Config struct {
	Stable  StableSection  `koanf:"stable"`
	Ledger  LedgerSection  `koanf:"ledger"`
	Guards  GuardsSection  `koanf:"guards"`
	Calls   CallsSection   `koanf:"calls"`
	Log     LogSection     `koanf:"log"`
	Metrics MetricsSection `koanf:"metrics"`
}

// StableSection configures the stable memory engine.
type StableSection struct {
	Dir         string  `koanf:"dir"`
	InMemory    bool    `koanf:"in_memory"`
	GCInterval  string  `koanf:"gc_interval"`
	GCThreshold float64 `koanf:"gc_threshold"`
	CacheSize   int64   `koanf:"cache_size"`
	SyncWrites  bool    `koanf:"sync_writes"`
}

// Engine converts the section to an engine configuration.
func (s StableSection) Engine() stable.Config {
	return stable.Config{
		Dir:         s.Dir,
		InMemory:    s.InMemory,
		GCInterval:  s.GCInterval,
		GCThreshold: s.GCThreshold,
		CacheSize:   s.CacheSize,
		SyncWrites:  s.SyncWrites,
	}
}

// LedgerSection configures ledger transfers.
type LedgerSection struct {
	TransferFeeE8s uint64 `koanf:"transfer_fee_e8s"`
	Memo           uint64 `koanf:"memo"`
}

// GuardsSection configures access guards.
type GuardsSection struct {
	// Admins are textual principals allowed past the admin guard.
	Admins []string `koanf:"admins"`
}

// CallsSection paces calls to external canisters.
type CallsSection struct {
	// RatePerSecond limits outgoing calls. Zero disables the limit.
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsSection configures the metrics endpoint.
type MetricsSection struct {
	Addr string `koanf:"addr"`
}
