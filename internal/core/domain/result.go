package domain

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CallResult is the reply envelope exchanged between canisters: exactly one
// of Ok or Err is set.
type CallResult[T any] struct {
	Ok  *T        `json:"Ok,omitempty"`
	Err *APIError `json:"Err,omitempty"`
}

// OkResult wraps a successful value.
func OkResult[T any](v T) CallResult[T] {
	return CallResult[T]{Ok: &v}
}

// ErrResult wraps a failure. Non-APIError values become Unexpected.
func ErrResult[T any](err error) CallResult[T] {
	if ae, ok := AsAPIError(err); ok {
		return CallResult[T]{Err: ae}
	}
	return CallResult[T]{Err: Unexpected(err.Error()).WithSource(Source)}
}

// ResultOf builds the envelope from a Go (value, error) pair.
func ResultOf[T any](v T, err error) CallResult[T] {
	if err != nil {
		return ErrResult[T](err)
	}
	return OkResult(v)
}

// Result converts the envelope back into a Go (value, error) pair.
func (r CallResult[T]) Result() (T, error) {
	var zero T
	if r.Err != nil {
		return zero, r.Err
	}
	if r.Ok == nil {
		return zero, Deserialize("empty call result").WithSource(Source)
	}
	return *r.Ok, nil
}

// Marshal encodes the envelope.
func (r CallResult[T]) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeCallResult decodes an envelope produced by Marshal.
func DecodeCallResult[T any](data []byte) (CallResult[T], error) {
	var r CallResult[T]
	if err := json.Unmarshal(data, &r); err != nil {
		return r, Deserialize("decode call result").
			WithMethod("decode_call_result").
			WithSource(Source).
			WithCause(err)
	}
	return r, nil
}
