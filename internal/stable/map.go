package stable

import "errors"

// Map is an ordered key-value container over one region. Iteration follows
// the byte order of encoded keys.
type Map[K, V any] struct {
	region Region
	keys   KeyCodec[K]
	values ValueCodec[V]
}

// NewMap binds a map to region.
func NewMap[K, V any](region Region, keys KeyCodec[K], values ValueCodec[V]) *Map[K, V] {
	return &Map[K, V]{
		region: region,
		keys:   keys,
		values: values,
	}
}

// Region returns the region the map lives in.
func (m *Map[K, V]) Region() Region {
	return m.region
}

func (m *Map[K, V]) decodeValue(raw []byte) (V, error) {
	v, err := m.values.Decode(raw)
	if err != nil {
		return v, &CodecError{Op: "decode", Err: err}
	}
	return v, nil
}

func (m *Map[K, V]) decodeEntry(key, raw []byte) (K, V, error) {
	var v V
	k, err := m.keys.DecodeKey(key[1:])
	if err != nil {
		return k, v, &CodecError{Op: "decode", Err: err}
	}
	v, err = m.decodeValue(raw)
	return k, v, err
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool, error) {
	var zero V
	raw, err := m.region.engine.get(m.region.key(m.keys.EncodeKey(k)))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return zero, false, nil
		}
		return zero, false, err
	}
	v, err := m.decodeValue(raw)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// ContainsKey reports whether k is present.
func (m *Map[K, V]) ContainsKey(k K) (bool, error) {
	_, err := m.region.engine.get(m.region.key(m.keys.EncodeKey(k)))
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert stores v under k and returns the value it replaced, if any.
func (m *Map[K, V]) Insert(k K, v V) (V, bool, error) {
	var zero V
	raw, err := m.values.Encode(v)
	if err != nil {
		return zero, false, &CodecError{Op: "encode", Err: err}
	}

	prev, had, err := m.region.engine.swap(m.region.key(m.keys.EncodeKey(k)), raw)
	if err != nil || !had {
		return zero, false, err
	}
	old, err := m.decodeValue(prev)
	if err != nil {
		return zero, true, err
	}
	return old, true, nil
}

// Remove deletes k and returns the removed value, if any.
func (m *Map[K, V]) Remove(k K) (V, bool, error) {
	var zero V
	prev, had, err := m.region.engine.take(m.region.key(m.keys.EncodeKey(k)))
	if err != nil || !had {
		return zero, false, err
	}
	old, err := m.decodeValue(prev)
	if err != nil {
		return zero, true, err
	}
	return old, true, nil
}

// First returns the entry with the smallest key.
func (m *Map[K, V]) First() (K, V, bool, error) {
	var (
		k     K
		v     V
		found bool
		err   error
	)
	scanErr := m.region.engine.scan(m.region.prefix(), func(key, raw []byte) bool {
		k, v, err = m.decodeEntry(key, raw)
		found = err == nil
		return false
	})
	if scanErr != nil {
		return k, v, false, scanErr
	}
	return k, v, found, err
}

// Last returns the entry with the greatest key.
func (m *Map[K, V]) Last() (K, V, bool, error) {
	var (
		k K
		v V
	)
	key, raw, found, err := m.region.engine.last(byte(m.region.id))
	if err != nil || !found {
		return k, v, false, err
	}
	k, v, err = m.decodeEntry(key, raw)
	if err != nil {
		return k, v, false, err
	}
	return k, v, true, nil
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() (uint64, error) {
	return m.region.engine.count(m.region.prefix())
}

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() (bool, error) {
	_, _, found, err := m.First()
	return !found, err
}

// Range visits entries in key order until fn returns false.
func (m *Map[K, V]) Range(fn func(K, V) bool) error {
	var decodeErr error
	err := m.region.engine.scan(m.region.prefix(), func(key, raw []byte) bool {
		k, v, err := m.decodeEntry(key, raw)
		if err != nil {
			decodeErr = err
			return false
		}
		return fn(k, v)
	})
	if err != nil {
		return err
	}
	return decodeErr
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() error {
	return m.region.engine.deletePrefix(m.region.prefix())
}
