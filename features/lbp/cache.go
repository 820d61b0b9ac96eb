package lbp

import "sync"

type cacheKey struct {
	nSamples int
	mt       MappingType
}

// TableCache memoizes mapping tables by (nSamples, mapping type). Tables
// are pure functions of their key, so a cache may be shared freely; callers
// wanting amortized reuse own the cache, there is no package-level one.
// The zero value is ready to use.
type TableCache struct {
	mu     sync.RWMutex
	tables map[cacheKey]*Mapping
}

// NewTableCache creates an empty mapping-table cache.
func NewTableCache() *TableCache {
	return &TableCache{
		tables: make(map[cacheKey]*Mapping),
	}
}

// Get returns the mapping table for (nSamples, mt), building and storing
// it on first use.
func (c *TableCache) Get(nSamples int, mt MappingType) (*Mapping, error) {
	key := cacheKey{nSamples: nSamples, mt: mt}

	c.mu.RLock()
	m, ok := c.tables[key]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := MappingTable(nSamples, mt)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.tables[key]; ok {
		return cached, nil
	}
	if c.tables == nil {
		c.tables = make(map[cacheKey]*Mapping)
	}
	c.tables[key] = m
	return m, nil
}

// Len returns the number of cached tables.
func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
