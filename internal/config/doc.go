// Package config defines the canikit configuration structure.
//
// Values are loaded by confloader in this order of precedence: flags,
// CANIKIT_* environment variables, the YAML file, then Default.
package config
