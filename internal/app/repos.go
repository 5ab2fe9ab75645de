package app

import (
	"github.com/yndnr/canikit-go/internal/stable"
	"github.com/yndnr/canikit-go/internal/storage"
	"github.com/yndnr/canikit-go/internal/telemetry/logger"
)

// OpenRepository claims region id for the entity name and returns its
// repository. Operations are counted in the context's metrics.
func OpenRepository[K, V any](c *Context, id stable.MemoryID, name string, keys stable.KeyCodec[K], values stable.ValueCodec[V]) (*storage.Repository[K, V], error) {
	region, err := c.claim(id, name)
	if err != nil {
		return nil, err
	}
	return storage.NewRepository(name, stable.NewMap(region, keys, values), storage.WithRecorder(c.metrics)), nil
}

// OpenAutoRepository claims id for the entity and watermarkID for its key
// high-water mark.
func OpenAutoRepository[V any](c *Context, id, watermarkID stable.MemoryID, name string, values stable.ValueCodec[V]) (*storage.AutoRepository[V], error) {
	region, err := c.claim(id, name)
	if err != nil {
		return nil, err
	}
	wm, err := c.claim(watermarkID, name+"_watermark")
	if err != nil {
		return nil, err
	}
	return storage.NewAutoRepository(
		name,
		stable.NewMap[uint64, V](region, stable.Uint64Key{}, values),
		stable.NewCell[uint64](wm, stable.JSONCodec[uint64]{}),
		storage.WithRecorder(c.metrics),
	), nil
}

// OpenCell claims id for a single named value.
func OpenCell[V any](c *Context, id stable.MemoryID, name string, values stable.ValueCodec[V]) (*storage.CellStorage[V], error) {
	region, err := c.claim(id, name)
	if err != nil {
		return nil, err
	}
	return storage.NewCellStorage(name, stable.NewCell(region, values)), nil
}

func (c *Context) claim(id stable.MemoryID, name string) (stable.Region, error) {
	region, err := c.memory.Get(id, name)
	if err != nil {
		return stable.Region{}, err
	}
	c.log.Debug("region claimed", logger.Region(uint8(id), name))
	return region, nil
}
