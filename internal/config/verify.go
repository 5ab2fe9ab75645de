package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/yndnr/canikit-go/pkg/principal"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if err := verifyStable(&cfg.Stable); err != nil {
		return err
	}
	if cfg.Ledger.TransferFeeE8s == 0 {
		return errors.New("ledger.transfer_fee_e8s must be greater than 0")
	}
	if _, err := cfg.Guards.Principals(); err != nil {
		return err
	}
	if cfg.Calls.RatePerSecond < 0 {
		return errors.New("calls.rate_per_second must not be negative")
	}
	if cfg.Calls.RatePerSecond > 0 && cfg.Calls.Burst < 1 {
		return errors.New("calls.burst must be at least 1")
	}
	return nil
}

func verifyStable(cfg *StableSection) error {
	if !cfg.InMemory && cfg.Dir == "" {
		return errors.New("stable.dir is required")
	}
	if cfg.GCThreshold <= 0 || cfg.GCThreshold >= 1 {
		return fmt.Errorf("stable.gc_threshold must be in (0, 1), got %v", cfg.GCThreshold)
	}
	if cfg.GCInterval != "" {
		if _, err := time.ParseDuration(cfg.GCInterval); err != nil {
			return fmt.Errorf("stable.gc_interval: %w", err)
		}
	}
	return nil
}

// Principals parses the admin list.
func (g GuardsSection) Principals() ([]principal.Principal, error) {
	out := make([]principal.Principal, 0, len(g.Admins))
	for _, text := range g.Admins {
		p, err := principal.FromText(text)
		if err != nil {
			return nil, fmt.Errorf("guards.admins: %q: %w", text, err)
		}
		out = append(out, p)
	}
	return out, nil
}
