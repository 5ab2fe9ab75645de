// Package app wires the process: configuration, logger, metrics, the
// stable engine and the repositories that live in it.
//
// A Context is built once at startup and passed to whatever serves
// requests. Regions are claimed through it so that every entity keeps
// the same memory id across upgrades.
package app

import (
	"cmp"
	"context"
	"fmt"
	"sync"

	"github.com/yndnr/canikit-go/internal/config"
	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/core/validator"
	"github.com/yndnr/canikit-go/internal/ic/guard"
	"github.com/yndnr/canikit-go/internal/ic/host"
	"github.com/yndnr/canikit-go/internal/stable"
	"github.com/yndnr/canikit-go/internal/storage"
	"github.com/yndnr/canikit-go/internal/telemetry/logger"
	"github.com/yndnr/canikit-go/internal/telemetry/metric"
	"github.com/yndnr/canikit-go/pkg/principal"
)

// Stock region ids.
const (
	AuditLogRegion       stable.MemoryID = 0
	AuditWatermarkRegion stable.MemoryID = 1
)

// MaxActionLength bounds the action name of an audit entry.
const MaxActionLength = 64

// Context owns the long-lived components of the process.
type Context struct {
	cfg     *config.Config
	log     logger.Logger
	metrics *metric.Registry
	engine  *stable.Engine
	memory  *stable.MemoryManager
	gate    *host.Gate
	admins  []principal.Principal
	audit   *storage.AutoRepository[domain.Log]

	closeOnce sync.Once
	closeErr  error
}

// New opens the stable engine described by cfg and registers metrics.
func New(cfg *config.Config, log logger.Logger) (*Context, error) {
	admins, err := cfg.Guards.Principals()
	if err != nil {
		return nil, err
	}

	engine, err := stable.Open(cfg.Stable.Engine(), log.Slog())
	if err != nil {
		return nil, fmt.Errorf("open stable engine: %w", err)
	}

	c := &Context{
		cfg:     cfg,
		log:     log,
		metrics: metric.NewRegistry(),
		engine:  engine,
		memory:  stable.NewMemoryManager(engine),
		admins:  admins,
	}
	c.gate = host.NewGate(cfg.Calls.RatePerSecond, cfg.Calls.Burst, c.metrics)

	if err := engine.RegisterMetrics(c.metrics.Registerer()); err != nil {
		engine.Close()
		return nil, fmt.Errorf("register stable metrics: %w", err)
	}
	if err := c.metrics.Registerer().Register(metric.NewRegionCollector(c.regionSamples)); err != nil {
		engine.Close()
		return nil, fmt.Errorf("register region metrics: %w", err)
	}

	c.audit, err = OpenAutoRepository(c, AuditLogRegion, AuditWatermarkRegion, "audit_log", stable.JSONCodec[domain.Log]{})
	if err != nil {
		engine.Close()
		return nil, err
	}

	log.Debug("app context ready",
		"in_memory", engine.InMemory(),
		"dir", cfg.Stable.Dir,
		"admins", len(admins),
	)
	return c, nil
}

// Config returns the configuration the context was built from.
func (c *Context) Config() *config.Config { return c.cfg }

// Logger returns the process logger.
func (c *Context) Logger() logger.Logger { return c.log }

// Metrics returns the metric registry.
func (c *Context) Metrics() *metric.Registry { return c.metrics }

// Engine returns the stable engine.
func (c *Context) Engine() *stable.Engine { return c.engine }

// Memory returns the region manager.
func (c *Context) Memory() *stable.MemoryManager { return c.memory }

// Gate returns the gate shared by external call helpers.
func (c *Context) Gate() *host.Gate { return c.gate }

// Admins returns the configured admin principals.
func (c *Context) Admins() []principal.Principal { return c.admins }

// RequireAdmin fails unless the caller in ctx is a configured admin.
func (c *Context) RequireAdmin(ctx context.Context) error {
	return guard.IsAdmin(ctx, c.admins)
}

// Audit returns the audit log repository.
func (c *Context) Audit() *storage.AutoRepository[domain.Log] { return c.audit }

// Record appends entry to the audit log and returns its id. The action
// must be 1 to MaxActionLength characters.
func (c *Context) Record(ctx context.Context, entry domain.Log) (uint64, error) {
	err := validator.New([]domain.ValidateField{
		domain.Field("action", domain.StringLength(entry.Action, 1, MaxActionLength)),
	}).Validate()
	if err != nil {
		return 0, err
	}

	e, err := c.audit.Insert(entry)
	if err != nil {
		return 0, err
	}
	logger.L(ctx).Debug("audit entry recorded", "id", e.Key, "action", entry.Action)
	return e.Key, nil
}

// AuditLog returns one page of the audit log, newest first.
func (c *Context) AuditLog(page, limit int) (domain.PagedResponse[domain.LogResponse], error) {
	return c.auditLog(nil, page, limit)
}

// AuditLogWithin is AuditLog restricted to entries created inside r.
func (c *Context) AuditLogWithin(r domain.DateRange, page, limit int) (domain.PagedResponse[domain.LogResponse], error) {
	within := storage.FilterFunc[uint64, domain.Log](func(_ uint64, l domain.Log) bool {
		return r.IsWithin(l.CreatedAt)
	})
	return c.auditLog([]storage.Filter[uint64, domain.Log]{within}, page, limit)
}

func (c *Context) auditLog(filters []storage.Filter[uint64, domain.Log], page, limit int) (domain.PagedResponse[domain.LogResponse], error) {
	newestFirst := storage.Reverse(storage.SortFunc[uint64, domain.Log](func(a, b storage.Entry[uint64, domain.Log]) int {
		return cmp.Compare(a.Key, b.Key)
	}))
	paged, err := storage.List[uint64, domain.Log](c.audit, filters, newestFirst, page, limit)
	if err != nil {
		return domain.PagedResponse[domain.LogResponse]{}, err
	}
	return domain.MapPaged(paged, func(e storage.Entry[uint64, domain.Log]) domain.LogResponse {
		return e.Value.ToResponse(e.Key)
	}), nil
}

// Close shuts the engine down. Safe to call more than once.
func (c *Context) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.engine.Close()
	})
	return c.closeErr
}

func (c *Context) regionSamples() ([]metric.RegionSample, error) {
	stats, err := c.engine.Regions()
	if err != nil {
		return nil, err
	}
	names := make(map[stable.MemoryID]string)
	for _, r := range c.memory.Claimed() {
		names[r.ID()] = r.Name()
	}

	out := make([]metric.RegionSample, 0, len(stats))
	for _, s := range stats {
		out = append(out, metric.RegionSample{
			ID:    uint8(s.ID),
			Name:  names[s.ID],
			Keys:  s.Keys,
			Bytes: s.Bytes,
		})
	}
	return out, nil
}
