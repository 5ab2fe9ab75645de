package wasm

import (
	"bytes"
	"compress/gzip"
	"context"
	"testing"
)

// emptyModule is the smallest valid module: magic plus version.
var emptyModule = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

func gz(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecompressGzip(t *testing.T) {
	out, err := DecompressGzip(gz(t, emptyModule))
	if err != nil {
		t.Fatalf("DecompressGzip() error = %v", err)
	}
	if !bytes.Equal(out, emptyModule) {
		t.Errorf("DecompressGzip() = %x", out)
	}

	if _, err := DecompressGzip(emptyModule); err == nil {
		t.Error("expected error for non-gzip input")
	}
}

func TestValidateGzipped(t *testing.T) {
	ctx := context.Background()

	t.Run("valid module", func(t *testing.T) {
		module, err := ValidateGzipped(ctx, gz(t, emptyModule))
		if err != nil {
			t.Fatalf("ValidateGzipped() error = %v", err)
		}
		if !bytes.Equal(module, emptyModule) {
			t.Errorf("module = %x", module)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte("\x00bad"), emptyModule[4:]...)
		if _, err := ValidateGzipped(ctx, gz(t, bad)); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("truncated", func(t *testing.T) {
		if _, err := ValidateGzipped(ctx, gz(t, emptyModule[:5])); err == nil {
			t.Error("expected validation error")
		}
	})
}
