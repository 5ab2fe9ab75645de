package storage

import (
	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/stable"
)

// AutoRepository is a Repository whose uint64 keys are allocated on insert.
//
// Allocation is max(highest key, watermark) + 1, starting at 1. The
// watermark cell remembers the last allocated key, so removing the highest
// entity never causes its key to be handed out again.
type AutoRepository[V any] struct {
	*Repository[uint64, V]
	watermark *stable.Cell[uint64]
}

// NewAutoRepository creates an auto-keyed repository. A nil watermark
// falls back to highest key + 1.
func NewAutoRepository[V any](name string, container *stable.Map[uint64, V], watermark *stable.Cell[uint64], opts ...Option) *AutoRepository[V] {
	return &AutoRepository[V]{
		Repository: NewRepository(name, container, opts...),
		watermark:  watermark,
	}
}

// NextKey returns the key the next Insert will use.
func (r *AutoRepository[V]) NextKey() (uint64, error) {
	next, err := r.nextKey()
	return next, wrap(err, r.name, "next_key")
}

func (r *AutoRepository[V]) nextKey() (uint64, error) {
	next := uint64(1)

	last, _, found, err := r.container.Last()
	if err != nil {
		return 0, err
	}
	if found {
		next = last + 1
	}

	if r.watermark != nil {
		mark, ok, err := r.watermark.Get()
		if err != nil {
			return 0, err
		}
		if ok && mark >= next {
			next = mark + 1
		}
	}
	return next, nil
}

// Insert stores value under the next free key and returns the entry.
func (r *AutoRepository[V]) Insert(value V) (Entry[uint64, V], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, err := r.nextKey()
	if err != nil {
		return Entry[uint64, V]{}, r.done("insert", err)
	}

	// Allocation above should never collide; the check guards the container
	// against a corrupted watermark.
	exists, err := r.container.ContainsKey(key)
	if err != nil {
		return Entry[uint64, V]{}, r.done("insert", err)
	}
	if exists {
		return Entry[uint64, V]{}, r.done("insert",
			tag(domain.Duplicate("Key already exists"), r.name, "insert"))
	}

	// The entry and the watermark are committed together so a failure
	// leaves neither behind.
	w := stable.NewWrite()
	if err := r.container.StageInsert(w, key, value); err != nil {
		return Entry[uint64, V]{}, r.done("insert", err)
	}
	if r.watermark != nil {
		if err := r.watermark.StageSet(w, key); err != nil {
			return Entry[uint64, V]{}, r.done("insert", err)
		}
	}
	if err := w.Commit(); err != nil {
		return Entry[uint64, V]{}, r.done("insert", err)
	}
	return Entry[uint64, V]{Key: key, Value: value}, r.done("insert", nil)
}
