package stable

import "errors"

// ErrMixedEngines is returned when one Write stages keys of two engines.
var ErrMixedEngines = errors.New("stable: write spans more than one engine")

// Write collects puts across regions of one engine and commits them in a
// single transaction: either every staged value is stored or none is.
type Write struct {
	engine *Engine
	keys   [][]byte
	values [][]byte
	err    error
}

// NewWrite creates an empty write.
func NewWrite() *Write {
	return &Write{}
}

func (w *Write) stage(e *Engine, key, value []byte) {
	if w.err != nil {
		return
	}
	if w.engine == nil {
		w.engine = e
	} else if w.engine != e {
		w.err = ErrMixedEngines
		return
	}
	w.keys = append(w.keys, key)
	w.values = append(w.values, value)
}

// Len returns the number of staged puts.
func (w *Write) Len() int {
	return len(w.keys)
}

// Commit stores every staged value. A failed staging step is reported here
// and nothing is written.
func (w *Write) Commit() error {
	if w.err != nil {
		return w.err
	}
	if w.engine == nil {
		return nil
	}
	return w.engine.setAll(w.keys, w.values)
}

// StageInsert encodes v and stages it under k. Nothing is stored until
// the write is committed.
func (m *Map[K, V]) StageInsert(w *Write, k K, v V) error {
	raw, err := m.values.Encode(v)
	if err != nil {
		return &CodecError{Op: "encode", Err: err}
	}
	w.stage(m.region.engine, m.region.key(m.keys.EncodeKey(k)), raw)
	return nil
}

// StageSet encodes v and stages it as the cell value.
func (c *Cell[V]) StageSet(w *Write, v V) error {
	raw, err := c.values.Encode(v)
	if err != nil {
		return &CodecError{Op: "encode", Err: err}
	}
	w.stage(c.region.engine, c.region.prefix(), raw)
	return nil
}
