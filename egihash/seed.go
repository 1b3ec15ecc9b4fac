package egihash

import "github.com/energicryptocurrency/egihash/crypto/sha3"

// SeedHash returns the 32-byte per-epoch seed for the epoch containing block.
// seed(0) is 32 zero bytes; seed(e) = keccak256(seed(e-1)), chained exactly
// epoch times from the genesis seed. This is the straight byte chain spec.md
// mandates, not the word-serialized form the original source used.
func SeedHash(block uint64) []byte {
	return seedHashForEpoch(Epoch(block))
}

func seedHashForEpoch(epoch uint64) []byte {
	seed := make([]byte, 32)
	copy(seed, genesisSeed)
	if epoch == 0 {
		return seed
	}
	keccak256 := sha3.NewKeccak256()
	for i := uint64(0); i < epoch; i++ {
		keccak256.Write(seed)
		seed = keccak256.Sum(nil)
		keccak256.Reset()
	}
	return seed
}
