package egihash

import (
	"bytes"
	"testing"

	"github.com/energicryptocurrency/egihash/crypto/sha3"
)

func TestSeedHashGenesis(t *testing.T) {
	got := SeedHash(0)
	if !bytes.Equal(got, make([]byte, 32)) {
		t.Fatalf("SeedHash(0) = %x, want 32 zero bytes", got)
	}
	got = SeedHash(29999)
	if !bytes.Equal(got, make([]byte, 32)) {
		t.Fatalf("SeedHash(29999) = %x, want 32 zero bytes (same epoch as block 0)", got)
	}
}

func TestSeedHashChain(t *testing.T) {
	// seed(e) = keccak256(seed(e-1)); verify block 30000 (epoch 1) matches one
	// keccak256 application of the genesis seed.
	want := sha3.Keccak256(make([]byte, 32))
	got := SeedHash(30000)
	if !bytes.Equal(got, want) {
		t.Fatalf("SeedHash(30000) = %x, want %x", got, want)
	}
}

func TestSeedHashChainLength(t *testing.T) {
	seed := make([]byte, 32)
	for i := 0; i < 5; i++ {
		seed = sha3.Keccak256(seed)
	}
	got := SeedHash(5 * epochLength)
	if !bytes.Equal(got, seed) {
		t.Fatalf("SeedHash at epoch 5 = %x, want %x", got, seed)
	}
}
