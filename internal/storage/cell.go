package storage

import (
	"fmt"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/stable"
)

// CellStorage serves a single named value.
type CellStorage[V any] struct {
	name string
	cell *stable.Cell[V]
}

// NewCellStorage creates a cell storage named name.
func NewCellStorage[V any](name string, cell *stable.Cell[V]) *CellStorage[V] {
	return &CellStorage[V]{name: name, cell: cell}
}

// Name returns the value name used in errors.
func (c *CellStorage[V]) Name() string { return c.name }

// Get returns the value, or Unexpected when it was never set.
func (c *CellStorage[V]) Get() (V, error) {
	v, ok, err := c.cell.Get()
	if err != nil {
		return v, wrap(err, c.name, "get")
	}
	if !ok {
		return v, tag(domain.Unexpected(fmt.Sprintf("Failed to get %s, not initialized", c.name)), c.name, "get")
	}
	return v, nil
}

// Set stores value and returns it.
func (c *CellStorage[V]) Set(value V) (V, error) {
	if err := c.cell.Set(value); err != nil {
		var zero V
		return zero, tag(domain.Unexpected(fmt.Sprintf("Failed to set %s", c.name)).WithCause(err), c.name, "set")
	}
	return value, nil
}

// IsEmpty reports whether the value was never set.
func (c *CellStorage[V]) IsEmpty() (bool, error) {
	empty, err := c.cell.IsEmpty()
	return empty, wrap(err, c.name, "is_empty")
}
