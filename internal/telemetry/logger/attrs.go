package logger

import (
	"fmt"
	"log/slog"
)

// Attribute keys shared by canikit log lines.
const (
	KeyRequestID = "request_id"
	KeyCanister  = "canister"
	KeyRegion    = "region"
	KeyBlock     = "block"
)

// Canister returns the attribute naming a canister.
func Canister(id fmt.Stringer) slog.Attr {
	return slog.String(KeyCanister, id.String())
}

// Region returns the group naming a stable memory region by id and name.
func Region(id uint8, name string) slog.Attr {
	return slog.Group(KeyRegion, slog.Int("id", int(id)), slog.String("name", name))
}

// Block returns the attribute naming a ledger block index.
func Block(index uint64) slog.Attr {
	return slog.Uint64(KeyBlock, index)
}

// ForCanister returns l with every line tagged with the canister id.
func ForCanister(l Logger, id fmt.Stringer) Logger {
	return l.With(Canister(id))
}
