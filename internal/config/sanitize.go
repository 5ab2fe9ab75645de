package config

import (
	"slices"
	"strings"
)

// Sanitize returns a copy of the config that is safe to log. Admin
// principals are shortened.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg
	sanitized.Guards.Admins = slices.Clone(cfg.Guards.Admins)
	for i, a := range sanitized.Guards.Admins {
		sanitized.Guards.Admins[i] = maskSecret(a)
	}
	return &sanitized
}

func maskSecret(s string) string {
	if len(s) <= 10 {
		return strings.Repeat("*", len(s))
	}
	return s[:5] + "..." + s[len(s)-3:]
}
