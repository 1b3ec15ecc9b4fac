package egihash

import (
	"github.com/energicryptocurrency/egihash/common/log"
	"github.com/energicryptocurrency/egihash/crypto/sha3"
)

// Cache is the per-epoch verification cache produced by seeding plus
// RandMemoHash, per spec.md §4.3. It is immutable once built; concurrent
// readers need no locks.
type Cache struct {
	epoch  uint64
	data   []byte // len == n*hashBytes
	closer func() error
}

// Close runs the cache's closer, if it has one. Caches built by buildCache
// and the cache of a DAG returned by LoadDag have none, so Close is a no-op
// for them; a loaded DAG's mapping is released by Dag.Close. Safe to call
// more than once.
func (c *Cache) Close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer()
	c.closer = nil
	return err
}

// Len returns N_c, the number of hashBytes-wide elements in the cache.
func (c *Cache) Len() uint64 {
	return uint64(len(c.data)) / hashBytes
}

// element returns the i'th hashBytes-wide slice of the cache, capped exactly
// at its own bounds (three-index slicing) so an append-based hash.Sum into
// it can never spill into the neighboring element.
func (c *Cache) element(i uint64) element {
	lo, hi := i*hashBytes, (i+1)*hashBytes
	return c.data[lo:hi:hi]
}

// Epoch returns the epoch this cache was built for.
func (c *Cache) Epoch() uint64 {
	return c.epoch
}

// Bytes returns the raw little-endian element bytes backing the cache, as
// stored by the DAG file codec.
func (c *Cache) Bytes() []byte {
	return c.data
}

// buildCache runs the two-step cache construction: keccak512 seeding
// followed by cacheRounds passes of RandMemoHash. progress is invoked with
// PhaseCacheSeeding during step 1 and PhaseCacheGeneration during step 2; a
// false return at any point aborts with ErrCancelled and discards the
// partial cache.
func buildCache(epoch uint64, seed []byte, prog progressor) (*Cache, error) {
	n := cacheSizeForEpoch(epoch) / hashBytes
	log.Debug("egihash: building cache", "epoch", epoch, "elements", n)
	data := make([]byte, n*hashBytes)
	c := &Cache{epoch: epoch, data: data}

	keccak512 := sha3.NewKeccak512Hasher()
	keccak512.Write(seed)
	keccak512.Sum(c.element(0)[:0])
	keccak512.Reset()
	for i := uint64(1); i < n; i++ {
		keccak512.Write(c.element(i - 1))
		keccak512.Sum(c.element(i)[:0])
		keccak512.Reset()
		if !prog.report(i, n-1, PhaseCacheSeeding) {
			log.Warn("egihash: cache build cancelled during seeding", "epoch", epoch)
			return nil, ErrCancelled
		}
	}

	temp := newElement()
	maxStep := uint64(cacheRounds)*n - 1
	for round := 0; round < cacheRounds; round++ {
		for j := uint64(0); j < n; j++ {
			dst := c.element(j)
			v := dst.words().word(0) % uint32(n)
			src := c.element((j - 1 + n) % n)
			copy(temp, src)
			cacheElem := c.element(uint64(v))
			tw, cw := temp.words(), cacheElem.words()
			for k := 0; k < hashWords; k++ {
				tw.xorWord(k, cw.word(k))
			}
			keccak512.Write(temp)
			keccak512.Sum(dst[:0])
			keccak512.Reset()

			step := uint64(round)*n + j
			if !prog.report(step, maxStep, PhaseCacheGeneration) {
				log.Warn("egihash: cache build cancelled during generation", "epoch", epoch, "round", round)
				return nil, ErrCancelled
			}
		}
	}
	return c, nil
}
