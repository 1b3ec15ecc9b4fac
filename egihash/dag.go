package egihash

import (
	"github.com/energicryptocurrency/egihash/common/log"
	"github.com/energicryptocurrency/egihash/crypto/sha3"
)

// elementOracle is the capability hashimoto mixes against: given a DAG
// element index, return its 64 bytes. calcDatasetItem recomputes on the fly
// from the cache (the "light" oracle); a materialized Dag answers by array
// lookup (the "full" oracle). Per spec.md's design notes this is modeled as
// a capability, not a class hierarchy.
type elementOracle interface {
	lookup(i uint64) []byte
}

// calcDatasetItem derives DAG element i from the cache, per spec.md §4.4.
func calcDatasetItem(c *Cache, i uint64) []byte {
	n := c.Len()
	mix := newElement()
	copy(mix, c.element(i%n))
	mix.words().xorWord(0, uint32(i))

	keccak512 := sha3.NewKeccak512Hasher()
	keccak512.Write(mix)
	keccak512.Sum(mix[:0])
	keccak512.Reset()

	mw := mix.words()
	for j := uint64(0); j < datasetParents; j++ {
		parent := fnv(uint32(i^j), mw.word(int(j%hashWords))) % uint32(n)
		pw := c.element(uint64(parent)).words()
		for k := 0; k < hashWords; k++ {
			mw.setWord(k, fnv(mw.word(k), pw.word(k)))
		}
	}

	keccak512.Write(mix)
	keccak512.Sum(mix[:0])
	return mix
}

// lightOracle recomputes each element from the cache on demand.
type lightOracle struct {
	cache *Cache
}

func (o lightOracle) lookup(i uint64) []byte {
	return calcDatasetItem(o.cache, i)
}

// Dag is the fully materialized dataset, each element derived from its
// owning Cache per the invariant DAG[i] = derive(Cache, i).
type Dag struct {
	epoch  uint64
	cache  *Cache
	data   []byte // len == n*hashBytes
	closer func() error
}

// Close releases any resources backing the DAG's data, such as a memory
// mapping obtained from LoadDag. It is a no-op for DAGs materialized by
// buildDag. Safe to call more than once.
func (d *Dag) Close() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer()
	d.closer = nil
	return err
}

// Len returns N_d, the number of hashBytes-wide elements in the DAG.
func (d *Dag) Len() uint64 {
	return uint64(len(d.data)) / hashBytes
}

func (d *Dag) Epoch() uint64 {
	return d.epoch
}

// Cache returns the cache this DAG was derived from, per §6's build_dag
// returning the embedded cache alongside the DAG handle.
func (d *Dag) Cache() *Cache {
	return d.cache
}

// Bytes returns the raw little-endian element bytes backing the DAG, as
// stored by the DAG file codec.
func (d *Dag) Bytes() []byte {
	return d.data
}

func (d *Dag) lookup(i uint64) []byte {
	return d.data[i*hashBytes : (i+1)*hashBytes]
}

// buildDag materializes every element of the DAG for the given cache,
// invoking progress as PhaseDagGeneration. A false return aborts with
// ErrCancelled and discards the partial DAG.
func buildDag(epoch uint64, cache *Cache, prog progressor) (*Dag, error) {
	n := fullSizeForEpoch(epoch) / hashBytes
	log.Debug("egihash: building dag", "epoch", epoch, "elements", n)
	data := make([]byte, n*hashBytes)
	d := &Dag{epoch: epoch, cache: cache, data: data}
	for i := uint64(0); i < n; i++ {
		copy(d.data[i*hashBytes:(i+1)*hashBytes], calcDatasetItem(cache, i))
		if !prog.report(i, n-1, PhaseDagGeneration) {
			log.Warn("egihash: dag build cancelled", "epoch", epoch, "element", i)
			return nil, ErrCancelled
		}
	}
	return d, nil
}
