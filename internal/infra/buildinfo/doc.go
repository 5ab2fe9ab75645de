// Package buildinfo exposes the version canikit was built with.
//
// Values are injected at build time:
//
//	go build -ldflags "-X github.com/yndnr/canikit-go/internal/infra/buildinfo.Version=v0.4.0"
//
// GoVersion falls back to the toolchain recorded in the binary.
package buildinfo
