package stable

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// MemoryID identifies a region of stable memory.
type MemoryID uint8

// ErrRegionInUse is returned when a region id is requested twice.
var ErrRegionInUse = errors.New("stable: region already in use")

// Region is one exclusive slice of the memory space.
type Region struct {
	engine *Engine
	id     MemoryID
	name   string
}

// ID returns the region id.
func (r Region) ID() MemoryID { return r.id }

// Name returns the name the region was registered with.
func (r Region) Name() string { return r.name }

func (r Region) prefix() []byte {
	return []byte{byte(r.id)}
}

func (r Region) key(suffix []byte) []byte {
	k := make([]byte, 1+len(suffix))
	k[0] = byte(r.id)
	copy(k[1:], suffix)
	return k
}

// MemoryManager hands out regions of an engine, each id at most once.
type MemoryManager struct {
	engine *Engine

	mu    sync.Mutex
	names map[MemoryID]string
}

// NewMemoryManager creates a manager for engine.
func NewMemoryManager(engine *Engine) *MemoryManager {
	return &MemoryManager{
		engine: engine,
		names:  make(map[MemoryID]string),
	}
}

// Get claims region id for name.
func (m *MemoryManager) Get(id MemoryID, name string) (Region, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if owner, ok := m.names[id]; ok {
		return Region{}, fmt.Errorf("%w: %d is held by %q", ErrRegionInUse, id, owner)
	}
	m.names[id] = name
	return Region{engine: m.engine, id: id, name: name}, nil
}

// Engine returns the engine the regions live in.
func (m *MemoryManager) Engine() *Engine {
	return m.engine
}

// Claimed lists the claimed regions ordered by id.
func (m *MemoryManager) Claimed() []Region {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Region, 0, len(m.names))
	for id, name := range m.names {
		out = append(out, Region{engine: m.engine, id: id, name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
