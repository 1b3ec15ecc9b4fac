package egihash

import (
	"encoding/binary"

	"github.com/energicryptocurrency/egihash/crypto/sha3"
)

// hashimoto is the memory-bound mixing loop shared by the light and full
// variants. They differ only in which elementOracle they pass; per spec.md
// §4.5 both MUST produce bit-identical results.
func hashimoto(header [32]byte, nonce uint64, fullSize uint64, oracle elementOracle) Result {
	seed := make([]byte, 40)
	copy(seed, header[:])
	binary.LittleEndian.PutUint64(seed[32:], nonce)

	keccak512 := sha3.NewKeccak512Hasher()
	keccak512.Write(seed)
	s := keccak512.Sum(nil)

	const w = mixBytes / wordBytes // 32
	mix := make([]byte, mixBytes)
	copy(mix, s)
	copy(mix[hashBytes:], s)

	n := fullSize / hashBytes
	const mixhashes = mixBytes / hashBytes // 2
	mw := wordView(mix)
	sw := wordView(s)

	for i := uint64(0); i < loopAccesses; i++ {
		p := uint64(fnv(uint32(i)^sw.word(0), mw.word(int(i%uint64(w))))) % (n / mixhashes) * mixhashes
		a := oracle.lookup(p)
		b := oracle.lookup(p + 1)
		newData := make([]byte, mixBytes)
		copy(newData, a)
		copy(newData[hashBytes:], b)
		nw := wordView(newData)
		for k := 0; k < w; k++ {
			mw.setWord(k, fnv(mw.word(k), nw.word(k)))
		}
	}

	cmix := make([]byte, w/4*wordBytes)
	cw := wordView(cmix)
	for i := 0; i < w; i += 4 {
		v := fnv(fnv(fnv(mw.word(i), mw.word(i+1)), mw.word(i+2)), mw.word(i+3))
		cw.setWord(i/4, v)
	}

	keccak256 := sha3.NewKeccak256()
	keccak256.Write(s)
	keccak256.Write(cmix)
	value := keccak256.Sum(nil)

	var res Result
	copy(res.Value[:], value)
	copy(res.MixDigest[:], cmix)
	return res
}

// HashimotoLight evaluates the hashimoto mix function against a verification
// cache, recomputing each needed DAG element on the fly.
func HashimotoLight(block uint64, cache *Cache, header [32]byte, nonce uint64) Result {
	return hashimoto(header, nonce, FullSize(block), lightOracle{cache: cache})
}

// HashimotoFull evaluates the hashimoto mix function against a fully
// materialized DAG, looking up each needed element by index.
func HashimotoFull(block uint64, dag *Dag, header [32]byte, nonce uint64) Result {
	return hashimoto(header, nonce, FullSize(block), dag)
}
