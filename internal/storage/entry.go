package storage

import (
	"errors"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/stable"
)

// Entry is a key with its stored value.
type Entry[K, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// Locator names an entity and the container it lives in.
type Locator[K, V any] interface {
	Name() string
	Container() *stable.Map[K, V]
}

// Queryable reads entities.
type Queryable[K, V any] interface {
	Locator[K, V]
	Get(key K) (Entry[K, V], error)
	GetMany(keys []K) ([]Entry[K, V], error)
	GetAll() ([]Entry[K, V], error)
	Find(pred func(K, V) bool) (Entry[K, V], bool, error)
	Filter(pred func(K, V) bool) ([]Entry[K, V], error)
}

// InsertableByKey stores entities under caller chosen keys.
type InsertableByKey[K, V any] interface {
	InsertByKey(key K, value V) (Entry[K, V], error)
	UpsertByKey(key K, value V) (Entry[K, V], error)
}

// Updateable replaces and removes existing entities.
type Updateable[K, V any] interface {
	Update(key K, value V) (Entry[K, V], error)
	Remove(key K) (bool, error)
	RemoveMany(keys []K) error
}

// Insertable stores entities under allocated keys.
type Insertable[V any] interface {
	Insert(value V) (Entry[uint64, V], error)
}

// Recorder observes repository calls.
type Recorder interface {
	StorageOp(entity, method string, err error)
}

type options struct {
	recorder Recorder
}

// Option configures a repository.
type Option func(*options)

// WithRecorder reports every call to rec.
func WithRecorder(rec Recorder) Option {
	return func(o *options) {
		o.recorder = rec
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// tag attaches the storage context shared by every repository error.
func tag(e *domain.APIError, name, method string) *domain.APIError {
	return e.WithMethod(method).
		WithInfo(name, "storage").
		WithSource(domain.Source)
}

// wrap maps a container failure to an APIError.
func wrap(err error, name, method string) error {
	if err == nil {
		return nil
	}
	if _, ok := domain.AsAPIError(err); ok {
		return err
	}

	var base *domain.APIError
	var ce *stable.CodecError
	switch {
	case errors.As(err, &ce) && ce.Op == "encode":
		base = domain.Serialize(ce.Error())
	case errors.As(err, &ce):
		base = domain.Deserialize(ce.Error())
	default:
		base = domain.Unexpected(err.Error())
	}
	return tag(base.WithCause(err), name, method)
}
