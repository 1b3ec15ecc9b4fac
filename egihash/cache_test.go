package egihash

import (
	"bytes"
	"testing"
)

// smallCache builds the epoch-0 cache through buildCache, sized by the
// current cacheSizeForEpoch: the production size unless the calling test has
// shrunk it with withTinySizes.
func smallCache(t *testing.T) *Cache {
	t.Helper()
	c, err := buildCache(0, seedHashForEpoch(0), newProgressor(nil, 1))
	if err != nil {
		t.Fatalf("buildCache: %v", err)
	}
	return c
}

func TestBuildCacheDeterministic(t *testing.T) {
	a, err := buildCache(0, seedHashForEpoch(0), newProgressor(nil, 1))
	if err != nil {
		t.Fatalf("buildCache: %v", err)
	}
	b, err := buildCache(0, seedHashForEpoch(0), newProgressor(nil, 1))
	if err != nil {
		t.Fatalf("buildCache: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("buildCache is not deterministic for the same epoch")
	}
}

func TestBuildCacheLength(t *testing.T) {
	c := smallCache(t)
	if c.Len() != CacheSize(0)/hashBytes {
		t.Fatalf("cache length = %d, want %d", c.Len(), CacheSize(0)/hashBytes)
	}
}

// TestBuildCacheGenerationReportsPerElement covers spec.md §8 testable
// property 7: a callback returning false at step k aborts the build with
// nothing published, for any k, not just a RandMemoHash round boundary.
func TestBuildCacheGenerationReportsPerElement(t *testing.T) {
	withTinySizes(t, 4, 0)
	var steps []uint64
	_, err := buildCache(0, seedHashForEpoch(0), newProgressor(func(step, max uint64, phase Phase) bool {
		if phase != PhaseCacheGeneration {
			return true
		}
		steps = append(steps, step)
		return step != 2
	}, 1))
	if err != ErrCancelled {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if len(steps) == 0 || steps[len(steps)-1] != 2 {
		t.Fatalf("expected cancellation to be observed at step 2 (mid round, not a round boundary), got steps %v", steps)
	}
}

func TestBuildCacheCancellation(t *testing.T) {
	calls := 0
	_, err := buildCache(0, seedHashForEpoch(0), newProgressor(func(step, max uint64, phase Phase) bool {
		calls++
		return calls < 3
	}, 1))
	if err != ErrCancelled {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}
