package egihash

import "testing"

func TestCacheSizeS1(t *testing.T) {
	if got := CacheSize(0); got != 16776896 {
		t.Fatalf("CacheSize(0) = %d, want 16776896", got)
	}
}

func TestFullSizeS1(t *testing.T) {
	if got := FullSize(0); got != 1073739904 {
		t.Fatalf("FullSize(0) = %d, want 1073739904", got)
	}
}

func TestCacheSizeS2SameEpoch(t *testing.T) {
	if CacheSize(29999) != CacheSize(0) {
		t.Fatalf("block 29999 should share epoch 0's cache size")
	}
	if FullSize(29999) != FullSize(0) {
		t.Fatalf("block 29999 should share epoch 0's full size")
	}
}

func TestSizesAdvanceAtEpochBoundary(t *testing.T) {
	if CacheSize(30000) == CacheSize(29999) {
		t.Fatalf("block 30000 should be a new epoch with a different cache size")
	}
}

func TestCacheSizeUnitsArePrime(t *testing.T) {
	for _, epoch := range []uint64{0, 1, 2, 10, 100} {
		block := EpochFirstBlock(epoch)
		cn := CacheSize(block) / hashBytes
		if !isPrime(cn) {
			t.Errorf("epoch %d: cache unit count %d is not prime", epoch, cn)
		}
	}
}

func TestFullSizeUnitsArePrime(t *testing.T) {
	for _, epoch := range []uint64{0, 1, 2, 10, 100} {
		block := EpochFirstBlock(epoch)
		size := FullSize(block)
		if size%mixBytes != 0 {
			t.Fatalf("epoch %d: full size %d not a multiple of mixBytes", epoch, size)
		}
		units := size / mixBytes
		if !isPrime(units) {
			t.Errorf("epoch %d: dag mix-unit count %d is not prime", epoch, units)
		}
	}
}

func TestFnvS4(t *testing.T) {
	if got := fnv(1, 2); got != 0x01000191 {
		t.Fatalf("fnv(1,2) = 0x%x, want 0x01000191", got)
	}
}

func TestIsPrime(t *testing.T) {
	cases := map[uint64]bool{
		0: false, 1: false, 2: true, 3: true, 4: false,
		17: true, 18: false, 97: true, 100: false,
	}
	for n, want := range cases {
		if got := isPrime(n); got != want {
			t.Errorf("isPrime(%d) = %v, want %v", n, got, want)
		}
	}
}
