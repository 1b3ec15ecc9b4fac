package egihash

import "github.com/energicryptocurrency/egihash/crypto/sha3"

// Keccak256 exposes the engine's Keccak adapter directly, per spec.md §6's
// `keccak256(bytes) -> 32B` utility entry.
func Keccak256(data []byte) [32]byte {
	var out [32]byte
	copy(out[:], sha3.Keccak256(data))
	return out
}

// BuildCache builds a fresh, unshared Cache for the epoch containing block.
// Most callers should prefer Registry.GetCache, which deduplicates
// concurrent builds for the same epoch; BuildCache is exposed for callers
// that intentionally want a private instance.
func BuildCache(block uint64, progress ProgressFunc) (*Cache, error) {
	epoch := Epoch(block)
	return buildCache(epoch, seedHashForEpoch(epoch), newProgressor(progress, 1))
}

// BuildDag builds a fresh Cache and then a fresh Dag for the epoch
// containing block. Most callers should prefer Registry.GetDag.
func BuildDag(block uint64, progress ProgressFunc) (*Dag, error) {
	epoch := Epoch(block)
	cache, err := buildCache(epoch, seedHashForEpoch(epoch), newProgressor(progress, 1))
	if err != nil {
		return nil, err
	}
	return buildDag(epoch, cache, newProgressor(progress, 1))
}
