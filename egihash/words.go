package egihash

import "encoding/binary"

// wordView is a zero-copy little-endian uint32 view over a byte slice whose
// length is a multiple of wordBytes. The underlying bytes and the words
// alias the same memory: writes through one are visible through the other.
// This replaces the source's serialize/deserialize round trip, which spec.md
// treats as a hot-path accident rather than part of the contract.
type wordView []byte

func (w wordView) len() int {
	return len(w) / wordBytes
}

func (w wordView) word(i int) uint32 {
	return binary.LittleEndian.Uint32(w[i*wordBytes:])
}

func (w wordView) setWord(i int, v uint32) {
	binary.LittleEndian.PutUint32(w[i*wordBytes:], v)
}

func (w wordView) xorWord(i int, v uint32) {
	w.setWord(i, w.word(i)^v)
}

// element is a single hashBytes-wide cache or DAG element.
type element []byte

func newElement() element {
	return make(element, hashBytes)
}

func (e element) words() wordView {
	return wordView(e)
}
