package mask

import (
	"image"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/devbush/photoccrop/internal/ports"
)

// DefaultCacheSize is the number of masks kept when no size is configured
const DefaultCacheSize = 16

// Cached memoizes another generator by diameter.
// Returned masks are shared between callers and must not be modified.
type Cached struct {
	next  ports.MaskGenerator
	cache *lru.Cache[int, *image.Alpha]
}

// NewCached wraps next with an LRU of the given size
func NewCached(next ports.MaskGenerator, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[int, *image.Alpha](size)
	if err != nil {
		return nil, err
	}
	return &Cached{next: next, cache: cache}, nil
}

func (c *Cached) CircularMask(diameter int) (*image.Alpha, error) {
	if m, ok := c.cache.Get(diameter); ok {
		return m, nil
	}

	m, err := c.next.CircularMask(diameter)
	if err != nil {
		return nil, err
	}
	c.cache.Add(diameter, m)
	return m, nil
}

// Len returns the number of cached masks
func (c *Cached) Len() int {
	return c.cache.Len()
}

var _ ports.MaskGenerator = (*Cached)(nil)
