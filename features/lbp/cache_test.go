package lbp

import (
	"errors"
	"sync"
	"testing"

	"github.com/steliosploumpis/menpo/features"
)

func TestTableCacheMemoizes(t *testing.T) {
	cache := NewTableCache()

	first, err := cache.Get(8, MappingRIU2)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	second, err := cache.Get(8, MappingRIU2)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if first != second {
		t.Error("repeated Get() returned a different table instance")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}

	if _, err := cache.Get(8, MappingU2); err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if _, err := cache.Get(4, MappingRIU2); err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if cache.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cache.Len())
	}
}

func TestTableCachePropagatesErrors(t *testing.T) {
	cache := NewTableCache()

	_, err := cache.Get(0, MappingRIU2)
	if !errors.Is(err, features.ErrInvalidParameter) {
		t.Errorf("Get(0, riu2) error = %v, want ErrInvalidParameter", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after failed build, want 0", cache.Len())
	}
}

func TestTableCacheConcurrentAccess(t *testing.T) {
	cache := NewTableCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := cache.Get(8, MappingRI)
			if err != nil {
				t.Errorf("Get() unexpected error: %v", err)
				return
			}
			if m.NewMax != 36 {
				t.Errorf("NewMax = %d, want 36", m.NewMax)
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}
