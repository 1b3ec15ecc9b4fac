package egihash

// isPrime reports whether x is prime, via trial division up to floor(sqrt(x)).
// Correctness, not speed, governs this test: it runs once per epoch.
func isPrime(x uint64) bool {
	if x < 2 {
		return false
	}
	if x%2 == 0 {
		return x == 2
	}
	for d := uint64(3); d*d <= x; d += 2 {
		if x%d == 0 {
			return false
		}
	}
	return true
}

// trim repeatedly subtracts 2*unit from size while size/unit is composite,
// returning the largest value <= size whose unit-count is prime.
func trim(size, unit uint64) uint64 {
	for !isPrime(size / unit) {
		size -= 2 * unit
	}
	return size
}

// cacheSizeForEpoch and fullSizeForEpoch compute the production sizing
// formula of spec.md §4.1. They are package variables, rather than plain
// functions, so tests can substitute a tiny formula and exercise the cache
// builder, DAG builder and file codec without materializing a real epoch's
// multi-gigabyte dataset — the same accommodation etchash makes with its
// cacheSizeForTesting/dagSizeForTesting constants.
var (
	cacheSizeForEpoch = func(epoch uint64) uint64 {
		return trim(cacheInitBytes+cacheGrowthBytes*epoch-hashBytes, hashBytes)
	}
	fullSizeForEpoch = func(epoch uint64) uint64 {
		return trim(datasetInitBytes+datasetGrowthBytes*epoch-mixBytes, mixBytes)
	}
)

// CacheSize returns the cache size in bytes for the epoch containing block.
func CacheSize(block uint64) uint64 {
	return cacheSizeForEpoch(Epoch(block))
}

// FullSize returns the DAG size in bytes for the epoch containing block.
func FullSize(block uint64) uint64 {
	return fullSizeForEpoch(Epoch(block))
}
