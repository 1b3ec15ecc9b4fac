package egihash

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/energicryptocurrency/egihash/common/log"
)

// entry is the registry's per-epoch record: a Cache, an optional Dag once
// built, and a done channel other callers can wait on while a build is in
// flight. Grounded on original_source/egihash.cpp's get_dag: a process-wide
// map guarded by a mutex, with the build itself running outside the lock and
// only the publish step taking it again.
type entry struct {
	epoch uint64
	cache *Cache
	dag   *Dag
	done  chan struct{}
	err   error
}

// Registry is the process-wide epoch singleton registry described in
// spec.md §4.6. Cache builds are deduplicated: at most one cache build per
// epoch runs at a time, and every GetCache caller for that epoch is handed
// the same *Cache. DAG builds are not: concurrent GetDag callers for an
// epoch whose DAG is not yet published each build a DAG, and may receive
// different *Dag instances.
type Registry struct {
	mu      sync.Mutex
	entries map[uint64]*entry
	cacheLRU *lru.Cache
	dagLRU   *lru.Cache
	cfg      Config
}

// NewRegistry creates a Registry using cfg's retention policy. A zero-value
// cfg falls back to DefaultConfig.
func NewRegistry(cfg Config) *Registry {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	r := &Registry{
		entries: make(map[uint64]*entry),
		cfg:     cfg,
	}
	if p := cfg.CacheRetention; !p.keepAll {
		r.cacheLRU, _ = lru.NewWithEvict(p.n, func(key, value interface{}) {
			epoch := key.(uint64)
			log.Debug("egihash: evicting cache", "epoch", epoch)
			r.mu.Lock()
			if e, ok := r.entries[epoch]; ok && e.dag == nil {
				delete(r.entries, epoch)
			}
			r.mu.Unlock()
		})
	}
	if p := cfg.DagRetention; !p.keepAll {
		r.dagLRU, _ = lru.NewWithEvict(p.n, func(key, value interface{}) {
			epoch := key.(uint64)
			log.Debug("egihash: evicting dag", "epoch", epoch)
			r.mu.Lock()
			delete(r.entries, epoch)
			r.mu.Unlock()
		})
	}
	return r
}

// GetCache returns the shared Cache for epoch, building it if necessary.
// Concurrent callers for the same epoch await the in-flight build rather
// than racing it.
func (r *Registry) GetCache(epoch uint64, prog ProgressFunc) (*Cache, error) {
	e, fresh := r.acquire(epoch)
	if fresh {
		cache, err := buildCache(epoch, seedHashForEpoch(epoch), newProgressor(prog, r.cfg.ProgressFrequency))
		r.publish(e, cache, nil, err)
	}
	<-e.done
	if e.err != nil {
		return nil, e.err
	}
	r.touchCache(epoch)
	return e.cache, nil
}

// GetDag returns the shared Dag for epoch, building its Cache first if
// necessary, then materializing the full DAG.
func (r *Registry) GetDag(epoch uint64, prog ProgressFunc) (*Dag, error) {
	cache, err := r.GetCache(epoch, prog)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	e, ok := r.entries[epoch]
	if ok && e.dag != nil {
		r.mu.Unlock()
		r.touchDag(epoch)
		return e.dag, nil
	}
	r.mu.Unlock()

	dag, err := buildDag(epoch, cache, newProgressor(prog, r.cfg.ProgressFrequency))
	r.mu.Lock()
	if err == nil {
		e.dag = dag
	}
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}
	r.touchDag(epoch)
	return dag, nil
}

// acquire returns the entry for epoch, creating it (with an unclosed done
// channel) if absent. fresh reports whether the caller is responsible for
// building and publishing it.
func (r *Registry) acquire(epoch uint64) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[epoch]; ok {
		return e, false
	}
	e := &entry{epoch: epoch, done: make(chan struct{})}
	r.entries[epoch] = e
	return e, true
}

// publish records the build outcome and wakes every waiter. On error the
// entry is removed so the next caller for this epoch starts a fresh build,
// per spec.md's cancellation property.
func (r *Registry) publish(e *entry, cache *Cache, dag *Dag, err error) {
	r.mu.Lock()
	if err != nil {
		delete(r.entries, e.epoch)
	} else {
		e.cache = cache
		e.dag = dag
	}
	e.err = err
	r.mu.Unlock()
	close(e.done)
}

func (r *Registry) touchCache(epoch uint64) {
	if r.cacheLRU != nil {
		r.cacheLRU.Add(epoch, struct{}{})
	}
}

func (r *Registry) touchDag(epoch uint64) {
	if r.dagLRU != nil {
		r.dagLRU.Add(epoch, struct{}{})
	}
}
