package config

// Default configuration values.
const (
	DefaultStableDir   = "data/stable"
	DefaultGCInterval  = "10m"
	DefaultGCThreshold = 0.5
	DefaultCacheSize   = 64 << 20

	DefaultTransferFeeE8s = 10_000

	DefaultCallBurst = 1

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsAddr = "127.0.0.1:9464"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Stable: StableSection{
			Dir:         DefaultStableDir,
			GCInterval:  DefaultGCInterval,
			GCThreshold: DefaultGCThreshold,
			CacheSize:   DefaultCacheSize,
			SyncWrites:  true,
		},
		Ledger: LedgerSection{
			TransferFeeE8s: DefaultTransferFeeE8s,
		},
		Calls: CallsSection{
			Burst: DefaultCallBurst,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Metrics: MetricsSection{
			Addr: DefaultMetricsAddr,
		},
	}
}
