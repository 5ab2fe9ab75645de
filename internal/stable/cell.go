package stable

import "errors"

// Cell holds at most one value in a region.
type Cell[V any] struct {
	region Region
	values ValueCodec[V]
}

// NewCell binds a cell to region.
func NewCell[V any](region Region, values ValueCodec[V]) *Cell[V] {
	return &Cell[V]{region: region, values: values}
}

// Get returns the stored value and whether one is present.
func (c *Cell[V]) Get() (V, bool, error) {
	var zero V
	raw, err := c.region.engine.get(c.region.prefix())
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return zero, false, nil
		}
		return zero, false, err
	}
	v, err := c.values.Decode(raw)
	if err != nil {
		return zero, false, &CodecError{Op: "decode", Err: err}
	}
	return v, true, nil
}

// Set replaces the stored value.
func (c *Cell[V]) Set(v V) error {
	raw, err := c.values.Encode(v)
	if err != nil {
		return &CodecError{Op: "encode", Err: err}
	}
	return c.region.engine.set(c.region.prefix(), raw)
}

// IsEmpty reports whether no value has been set.
func (c *Cell[V]) IsEmpty() (bool, error) {
	_, present, err := c.Get()
	return !present, err
}
