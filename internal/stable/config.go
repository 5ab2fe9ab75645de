package stable

// Config configures the stable memory engine.
type Config struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir string

	// InMemory keeps the whole database in memory. Used by tests and dry runs.
	InMemory bool

	// GCInterval is the interval between value log GC runs.
	// Default: 10m
	GCInterval string

	// GCThreshold is the discard ratio that makes a value log file eligible
	// for rewrite (0.0-1.0).
	// Default: 0.5
	GCThreshold float64

	// CacheSize is the block cache size in bytes.
	// Default: 64MB
	CacheSize int64

	// SyncWrites fsyncs after every write.
	// Default: true
	SyncWrites bool
}

// DefaultConfig returns the default on-disk configuration rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:         dir,
		GCInterval:  "10m",
		GCThreshold: 0.5,
		CacheSize:   64 << 20, // 64MB
		SyncWrites:  true,
	}
}

// InMemoryConfig returns a configuration for a throwaway in-memory engine.
func InMemoryConfig() Config {
	cfg := DefaultConfig("")
	cfg.InMemory = true
	cfg.SyncWrites = false
	return cfg
}
