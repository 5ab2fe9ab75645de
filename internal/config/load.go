package config

import "github.com/yndnr/canikit-go/internal/infra/confloader"

// Load builds the configuration from defaults, the optional file at path,
// CANIKIT_* environment variables and overrides, then verifies it.
func Load(path string, overrides map[string]any) (*Config, error) {
	cfg := Default()
	l := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := l.Load(cfg); err != nil {
		return nil, err
	}
	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
