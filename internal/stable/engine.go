package stable

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// Common errors
var (
	ErrKeyNotFound = errors.New("stable: key not found")
	ErrClosed      = errors.New("stable: engine closed")
)

// Engine is the Badger database backing every region.
type Engine struct {
	db     *badger.DB
	cfg    Config
	logger *slog.Logger

	closed     atomic.Bool
	lastGCTime atomic.Int64 // Unix milliseconds
	gcRuns     atomic.Uint64

	stopCh chan struct{}
	doneCh chan struct{}
}

// Open opens the engine described by cfg.
func Open(cfg Config, logger *slog.Logger) (*Engine, error) {
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, fmt.Errorf("stable: dir is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts.Logger = &badgerLogger{logger: logger}
	opts.SyncWrites = cfg.SyncWrites
	if cfg.CacheSize > 0 {
		opts.BlockCacheSize = cfg.CacheSize
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("stable: open db: %w", err)
	}

	e := &Engine{
		db:     db,
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	if cfg.InMemory {
		close(e.doneCh)
	} else {
		go e.gcLoop()
	}

	logger.Info("stable engine started",
		"dir", cfg.Dir,
		"in_memory", cfg.InMemory,
		"gc_interval", cfg.GCInterval)

	return e, nil
}

// InMemory reports whether the engine keeps no files.
func (e *Engine) InMemory() bool {
	return e.cfg.InMemory
}

func (e *Engine) get(key []byte) ([]byte, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// swap stores value under key and returns the value it replaced.
func (e *Engine) swap(key, value []byte) (prev []byte, had bool, err error) {
	if e.closed.Load() {
		return nil, false, ErrClosed
	}

	err = e.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		switch {
		case err == nil:
			if prev, err = item.ValueCopy(nil); err != nil {
				return err
			}
			had = true
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return txn.Set(key, value)
	})
	if err != nil {
		return nil, false, err
	}
	return prev, had, nil
}

// take deletes key and returns the value it held.
func (e *Engine) take(key []byte) (prev []byte, had bool, err error) {
	if e.closed.Load() {
		return nil, false, ErrClosed
	}

	err = e.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		if prev, err = item.ValueCopy(nil); err != nil {
			return err
		}
		had = true
		return txn.Delete(key)
	})
	if err != nil {
		return nil, false, err
	}
	return prev, had, nil
}

func (e *Engine) set(key, value []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// setAll stores every key/value pair in one transaction.
func (e *Engine) setAll(keys, values [][]byte) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.db.Update(func(txn *badger.Txn) error {
		for i, k := range keys {
			if err := txn.Set(k, values[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// scan visits keys with prefix in ascending order until fn returns false.
func (e *Engine) scan(prefix []byte, fn func(key, value []byte) bool) error {
	if e.closed.Load() {
		return ErrClosed
	}

	return e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(item.KeyCopy(nil), value) {
				break
			}
		}
		return nil
	})
}

// last returns the greatest key inside the one byte region prefix.
//
// Reverse iterators in Badger rewind to the prefix itself, so the search
// seeks to the next region's first key and walks back instead.
func (e *Engine) last(region byte) (key, value []byte, found bool, err error) {
	if e.closed.Load() {
		return nil, nil, false, ErrClosed
	}

	err = e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		if region == 0xFF {
			it.Rewind()
		} else {
			it.Seek([]byte{region + 1})
		}

		for ; it.Valid(); it.Next() {
			item := it.Item()
			k := item.Key()
			if len(k) == 0 || k[0] < region {
				return nil
			}
			if k[0] > region {
				continue
			}
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			key, value, found = item.KeyCopy(nil), v, true
			return nil
		}
		return nil
	})
	return key, value, found, err
}

// count returns the number of keys under prefix.
func (e *Engine) count(prefix []byte) (uint64, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}

	var n uint64
	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// deletePrefix removes every key under prefix.
func (e *Engine) deletePrefix(prefix []byte) error {
	if e.closed.Load() {
		return ErrClosed
	}

	var keys [][]byte
	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	wb := e.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// RegionStats describes the contents of one region.
type RegionStats struct {
	ID    MemoryID `json:"id" yaml:"id"`
	Keys  uint64   `json:"keys" yaml:"keys"`
	Bytes uint64   `json:"bytes" yaml:"bytes"`
}

// Regions reports key count and payload size for every non-empty region,
// ordered by id.
func (e *Engine) Regions() ([]RegionStats, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}

	var stats []RegionStats
	err := e.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k := item.Key()
			if len(k) == 0 {
				continue
			}
			id := MemoryID(k[0])
			if len(stats) == 0 || stats[len(stats)-1].ID != id {
				stats = append(stats, RegionStats{ID: id})
			}
			s := &stats[len(stats)-1]
			s.Keys++
			s.Bytes += uint64(len(k)) + uint64(item.ValueSize())
		}
		return nil
	})
	return stats, err
}

// Dump visits the raw keys and values of one region. Keys are passed
// without the region byte.
func (e *Engine) Dump(id MemoryID, fn func(key, value []byte) bool) error {
	return e.scan([]byte{byte(id)}, func(key, value []byte) bool {
		return fn(key[1:], value)
	})
}

// Backup streams a full backup to w, sealed when sealer is non-nil.
func (e *Engine) Backup(w io.Writer, sealer *Sealer) error {
	if e.closed.Load() {
		return ErrClosed
	}

	if sealer == nil {
		if _, err := e.db.Backup(w, 0); err != nil {
			return fmt.Errorf("stable: backup: %w", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if _, err := e.db.Backup(&buf, 0); err != nil {
		return fmt.Errorf("stable: backup: %w", err)
	}
	sealed, err := sealer.Seal(buf.Bytes())
	if err != nil {
		return err
	}
	if _, err := w.Write(sealed); err != nil {
		return fmt.Errorf("stable: write backup: %w", err)
	}
	e.logger.Info("sealed backup written", "bytes", len(sealed))
	return nil
}

// Restore replaces the whole memory with the backup read from r.
// A sealed backup needs the sealer it was written with.
func (e *Engine) Restore(r io.Reader, sealer *Sealer) error {
	if e.closed.Load() {
		return ErrClosed
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("stable: read backup: %w", err)
	}

	switch {
	case IsSealed(data) && sealer == nil:
		return ErrSealed
	case IsSealed(data):
		if data, err = sealer.Open(data); err != nil {
			return err
		}
	case sealer != nil:
		return ErrNotSealed
	}

	// DropAll discards older versions too, so a restored key is never
	// shadowed by a newer tombstone.
	if err := e.db.DropAll(); err != nil {
		return fmt.Errorf("stable: clear before restore: %w", err)
	}
	if err := e.db.Load(bytes.NewReader(data), 256); err != nil {
		return fmt.Errorf("stable: load backup: %w", err)
	}

	e.logger.Info("backup restored", "bytes", len(data))
	return nil
}

// GC rewrites value log files until nothing more can be reclaimed and
// returns the number of rewritten files.
func (e *Engine) GC() (uint64, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	if e.cfg.InMemory {
		return 0, nil
	}

	startTime := time.Now()
	var rewritten uint64
	for {
		err := e.db.RunValueLogGC(e.cfg.GCThreshold)
		if err != nil {
			if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
				break
			}
			return rewritten, fmt.Errorf("stable: gc: %w", err)
		}
		rewritten++
	}

	e.lastGCTime.Store(time.Now().UnixMilli())
	e.gcRuns.Add(1)

	e.logger.Info("gc completed",
		"files_rewritten", rewritten,
		"elapsed", time.Since(startTime))

	return rewritten, nil
}

// Close stops the GC loop and closes the database.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.logger.Info("shutting down stable engine")

	if !e.cfg.InMemory {
		close(e.stopCh)
	}
	<-e.doneCh

	if err := e.db.Close(); err != nil {
		return fmt.Errorf("stable: close db: %w", err)
	}
	return nil
}

// RegisterMetrics exposes engine sizes and GC activity on reg.
func (e *Engine) RegisterMetrics(reg prometheus.Registerer) error {
	sizes := func(pick func(lsm, vlog int64) int64) func() float64 {
		return func() float64 {
			if e.closed.Load() {
				return 0
			}
			return float64(pick(e.db.Size()))
		}
	}

	collectors := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "canikit",
			Subsystem: "stable",
			Name:      "lsm_size_bytes",
			Help:      "LSM tree size in bytes",
		}, sizes(func(lsm, _ int64) int64 { return lsm })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "canikit",
			Subsystem: "stable",
			Name:      "value_log_size_bytes",
			Help:      "Value log size in bytes",
		}, sizes(func(_, vlog int64) int64 { return vlog })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "canikit",
			Subsystem: "stable",
			Name:      "last_gc_timestamp_seconds",
			Help:      "Unix timestamp of the last GC run",
		}, func() float64 { return float64(e.lastGCTime.Load()) / 1000.0 }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "canikit",
			Subsystem: "stable",
			Name:      "gc_runs_total",
			Help:      "Completed value log GC runs",
		}, func() float64 { return float64(e.gcRuns.Load()) }),
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("stable: register metrics: %w", err)
		}
	}
	return nil
}

func (e *Engine) gcLoop() {
	defer close(e.doneCh)

	interval, err := time.ParseDuration(e.cfg.GCInterval)
	if err != nil || interval <= 0 {
		e.logger.Error("invalid gc_interval, using default 10m", "value", e.cfg.GCInterval)
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := e.GC(); err != nil && !errors.Is(err, ErrClosed) {
				e.logger.Error("auto gc failed", "error", err)
			}
		case <-e.stopCh:
			return
		}
	}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
