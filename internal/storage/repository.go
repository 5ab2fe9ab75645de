package storage

import (
	"sync"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/stable"
)

// Repository serves one entity stored in a stable map.
type Repository[K, V any] struct {
	name      string
	container *stable.Map[K, V]
	recorder  Recorder

	mu sync.Mutex
}

// NewRepository creates a repository named name over container.
func NewRepository[K, V any](name string, container *stable.Map[K, V], opts ...Option) *Repository[K, V] {
	o := buildOptions(opts)
	return &Repository[K, V]{
		name:      name,
		container: container,
		recorder:  o.recorder,
	}
}

// Name returns the entity name used in errors.
func (r *Repository[K, V]) Name() string { return r.name }

// Container returns the underlying map.
func (r *Repository[K, V]) Container() *stable.Map[K, V] { return r.container }

func (r *Repository[K, V]) done(method string, err error) error {
	err = wrap(err, r.name, method)
	if r.recorder != nil {
		r.recorder.StorageOp(r.name, method, err)
	}
	return err
}

// Get returns the entity stored under key, or NotFound.
func (r *Repository[K, V]) Get(key K) (Entry[K, V], error) {
	v, found, err := r.container.Get(key)
	if err != nil {
		return Entry[K, V]{}, r.done("get", err)
	}
	if !found {
		return Entry[K, V]{}, r.done("get", tag(domain.NotFound(""), r.name, "get"))
	}
	return Entry[K, V]{Key: key, Value: v}, r.done("get", nil)
}

// GetMany returns the entities for keys in the given order. Missing keys
// are skipped.
func (r *Repository[K, V]) GetMany(keys []K) ([]Entry[K, V], error) {
	out := make([]Entry[K, V], 0, len(keys))
	for _, k := range keys {
		v, found, err := r.container.Get(k)
		if err != nil {
			return nil, r.done("get_many", err)
		}
		if found {
			out = append(out, Entry[K, V]{Key: k, Value: v})
		}
	}
	return out, r.done("get_many", nil)
}

// GetAll returns every entity in key order.
func (r *Repository[K, V]) GetAll() ([]Entry[K, V], error) {
	out, err := r.collect(nil)
	return out, r.done("get_all", err)
}

// Find returns the first entity in key order matching pred.
func (r *Repository[K, V]) Find(pred func(K, V) bool) (Entry[K, V], bool, error) {
	var (
		hit   Entry[K, V]
		found bool
	)
	err := r.container.Range(func(k K, v V) bool {
		if pred(k, v) {
			hit, found = Entry[K, V]{Key: k, Value: v}, true
			return false
		}
		return true
	})
	if err != nil {
		return Entry[K, V]{}, false, r.done("find", err)
	}
	return hit, found, r.done("find", nil)
}

// Filter returns every entity matching pred in key order.
func (r *Repository[K, V]) Filter(pred func(K, V) bool) ([]Entry[K, V], error) {
	out, err := r.collect(pred)
	return out, r.done("filter", err)
}

func (r *Repository[K, V]) collect(pred func(K, V) bool) ([]Entry[K, V], error) {
	var out []Entry[K, V]
	err := r.container.Range(func(k K, v V) bool {
		if pred == nil || pred(k, v) {
			out = append(out, Entry[K, V]{Key: k, Value: v})
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []Entry[K, V]{}
	}
	return out, nil
}

// InsertByKey stores value under key. An existing key is left untouched and
// reported as Duplicate.
func (r *Repository[K, V]) InsertByKey(key K, value V) (Entry[K, V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists, err := r.container.ContainsKey(key)
	if err != nil {
		return Entry[K, V]{}, r.done("insert_by_key", err)
	}
	if exists {
		return Entry[K, V]{}, r.done("insert_by_key",
			tag(domain.Duplicate("Key already exists"), r.name, "insert_by_key"))
	}
	if _, _, err := r.container.Insert(key, value); err != nil {
		return Entry[K, V]{}, r.done("insert_by_key", err)
	}
	return Entry[K, V]{Key: key, Value: value}, r.done("insert_by_key", nil)
}

// UpsertByKey stores value under key, replacing any previous value.
func (r *Repository[K, V]) UpsertByKey(key K, value V) (Entry[K, V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, _, err := r.container.Insert(key, value); err != nil {
		return Entry[K, V]{}, r.done("upsert_by_key", err)
	}
	return Entry[K, V]{Key: key, Value: value}, r.done("upsert_by_key", nil)
}

// Update replaces the value of an existing key, or returns NotFound.
func (r *Repository[K, V]) Update(key K, value V) (Entry[K, V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exists, err := r.container.ContainsKey(key)
	if err != nil {
		return Entry[K, V]{}, r.done("update", err)
	}
	if !exists {
		return Entry[K, V]{}, r.done("update",
			tag(domain.NotFound("Key does not exist"), r.name, "update"))
	}
	if _, _, err := r.container.Insert(key, value); err != nil {
		return Entry[K, V]{}, r.done("update", err)
	}
	return Entry[K, V]{Key: key, Value: value}, r.done("update", nil)
}

// Remove deletes key and reports whether it was present.
func (r *Repository[K, V]) Remove(key K) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, had, err := r.container.Remove(key)
	if err != nil {
		// A value that no longer decodes is still gone.
		if _, ok := err.(*stable.CodecError); ok && had {
			return true, r.done("remove", nil)
		}
		return false, r.done("remove", err)
	}
	return had, r.done("remove", nil)
}

// RemoveMany deletes every key, ignoring absent ones.
func (r *Repository[K, V]) RemoveMany(keys []K) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		if _, had, err := r.container.Remove(k); err != nil {
			if _, ok := err.(*stable.CodecError); ok && had {
				continue
			}
			return r.done("remove_many", err)
		}
	}
	return r.done("remove_many", nil)
}
