package stable

import (
	"encoding/binary"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/yndnr/canikit-go/pkg/principal"
)

// KeyCodec encodes keys so that byte order matches key order.
type KeyCodec[K any] interface {
	EncodeKey(K) []byte
	DecodeKey([]byte) (K, error)
}

// ValueCodec converts values to and from their stored form.
type ValueCodec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// CodecError reports a value that could not be encoded or decoded.
type CodecError struct {
	Op  string // "encode" or "decode"
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("stable: %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// Uint64Key stores uint64 keys as 8 big-endian bytes.
type Uint64Key struct{}

func (Uint64Key) EncodeKey(k uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, k)
}

func (Uint64Key) DecodeKey(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("uint64 key: want 8 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// StringKey stores string keys as raw UTF-8.
type StringKey struct{}

func (StringKey) EncodeKey(k string) []byte          { return []byte(k) }
func (StringKey) DecodeKey(b []byte) (string, error) { return string(b), nil }

// PrincipalKey stores principals as their raw bytes.
type PrincipalKey struct{}

func (PrincipalKey) EncodeKey(k principal.Principal) []byte { return k.Bytes() }

func (PrincipalKey) DecodeKey(b []byte) (principal.Principal, error) {
	return principal.FromBytes(b)
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONCodec stores values as JSON.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
