package egihash

import "testing"

func TestHashimotoLightFullAgree(t *testing.T) {
	const n = 1031 // prime, large enough that loopAccesses indices spread out
	cache := tinyCache(n)
	data := make([]byte, 0, n*hashBytes)
	for i := uint64(0); i < n; i++ {
		data = append(data, calcDatasetItem(cache, i)...)
	}
	dag := &Dag{epoch: 0, cache: cache, data: data}

	var header [32]byte
	hash := Keccak256(nil)
	copy(header[:], hash[:])
	nonce := uint64(42)
	fullSize := uint64(n * hashBytes)

	light := hashimoto(header, nonce, fullSize, lightOracle{cache: cache})
	full := hashimoto(header, nonce, fullSize, dag)

	if light.Value != full.Value {
		t.Fatalf("hashimoto light/full value mismatch: %x vs %x", light.Value, full.Value)
	}
	if light.MixDigest != full.MixDigest {
		t.Fatalf("hashimoto light/full mixdigest mismatch: %x vs %x", light.MixDigest, full.MixDigest)
	}
}

func TestHashimotoDeterministic(t *testing.T) {
	const n = 1031
	cache := tinyCache(n)
	var header [32]byte
	a := hashimoto(header, 7, uint64(n*hashBytes), lightOracle{cache: cache})
	b := hashimoto(header, 7, uint64(n*hashBytes), lightOracle{cache: cache})
	if a.Value != b.Value || a.MixDigest != b.MixDigest {
		t.Fatalf("hashimoto is not deterministic for identical inputs")
	}
}

func TestHashimotoVariesByNonce(t *testing.T) {
	const n = 1031
	cache := tinyCache(n)
	var header [32]byte
	a := hashimoto(header, 1, n*hashBytes, lightOracle{cache: cache})
	b := hashimoto(header, 2, n*hashBytes, lightOracle{cache: cache})
	if a.Value == b.Value {
		t.Fatalf("hashimoto(nonce=1) == hashimoto(nonce=2), expected distinct values")
	}
}
