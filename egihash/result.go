package egihash

import "encoding/hex"

// Hash256 is a fixed-width 256-bit hash, ported from the original source's
// h256_t: used for hashimoto's value and mix digest output.
type Hash256 [32]byte

func (h Hash256) Bytes() []byte {
	return h[:]
}

func (h Hash256) String() string {
	return hex.EncodeToString(h[:])
}

// Result is the output of a hashimoto evaluation: the proof-of-work value
// and the mix digest bound to it, ported from the original source's
// result_t rather than returned as two loose byte slices.
type Result struct {
	Value     Hash256
	MixDigest Hash256
}
