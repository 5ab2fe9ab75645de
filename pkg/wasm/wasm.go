// Package wasm inspects canister modules before they are installed.
package wasm

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tetratelabs/wazero"
)

// MaxModuleSize bounds the decompressed size of a module.
const MaxModuleSize = 100 << 20

// ErrTooLarge is returned when a module decompresses past MaxModuleSize.
var ErrTooLarge = errors.New("wasm: module exceeds maximum size")

// DecompressGzip inflates a gzipped module.
func DecompressGzip(gzipped []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(gzipped))
	if err != nil {
		return nil, fmt.Errorf("wasm: open gzip: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, MaxModuleSize+1))
	if err != nil {
		return nil, fmt.Errorf("wasm: decompress: %w", err)
	}
	if len(out) > MaxModuleSize {
		return nil, ErrTooLarge
	}
	return out, nil
}

// Validate decodes and validates module without instantiating it. Imports
// are not resolved, so modules importing host functions validate.
func Validate(ctx context.Context, module []byte) error {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, module)
	if err != nil {
		return fmt.Errorf("wasm: invalid module: %w", err)
	}
	return compiled.Close(ctx)
}

// ValidateGzipped decompresses and validates a gzipped module, returning
// the raw module bytes.
func ValidateGzipped(ctx context.Context, gzipped []byte) ([]byte, error) {
	module, err := DecompressGzip(gzipped)
	if err != nil {
		return nil, err
	}
	if err := Validate(ctx, module); err != nil {
		return nil, err
	}
	return module, nil
}
