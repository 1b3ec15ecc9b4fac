package egihash

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"runtime"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/energicryptocurrency/egihash/common/log"
)

const (
	dagMagicSize  = 12
	dagHeaderSize = 66
	dagMajor      = 1
	dagRevision   = 23
	dagMinor      = 0
)

var dagMagic = []byte("EGIHASH_DAG\x00")

// dagHeader mirrors the on-disk layout of spec.md §4.7, byte for byte.
type dagHeader struct {
	Major      uint32
	Revision   uint32
	Minor      uint32
	Epoch      uint64
	CacheBegin uint64
	CacheEnd   uint64
	DagBegin   uint64
	DagEnd     uint64
}

func encodeHeader(h dagHeader) []byte {
	buf := make([]byte, dagHeaderSize)
	copy(buf[0:dagMagicSize], dagMagic)
	buf[12] = 0 // reserved
	binary.LittleEndian.PutUint32(buf[13:], h.Major)
	binary.LittleEndian.PutUint32(buf[17:], h.Revision)
	binary.LittleEndian.PutUint32(buf[21:], h.Minor)
	binary.LittleEndian.PutUint64(buf[25:], h.Epoch)
	binary.LittleEndian.PutUint64(buf[33:], h.CacheBegin)
	binary.LittleEndian.PutUint64(buf[41:], h.CacheEnd)
	binary.LittleEndian.PutUint64(buf[49:], h.DagBegin)
	binary.LittleEndian.PutUint64(buf[57:], h.DagEnd)
	buf[65] = 0 // reserved
	return buf
}

func decodeHeader(buf []byte) (dagHeader, error) {
	var h dagHeader
	if len(buf) < dagHeaderSize {
		return h, fmt.Errorf("egihash: short header: %w", ErrIo)
	}
	if !bytes.Equal(buf[0:dagMagicSize], dagMagic) {
		return h, fmt.Errorf("egihash: bad magic: %w", ErrDagCorrupt)
	}
	h.Major = binary.LittleEndian.Uint32(buf[13:])
	h.Revision = binary.LittleEndian.Uint32(buf[17:])
	h.Minor = binary.LittleEndian.Uint32(buf[21:])
	if h.Major != dagMajor || h.Revision != dagRevision {
		return h, fmt.Errorf("egihash: version %d.%d.%d unsupported: %w", h.Major, h.Revision, h.Minor, ErrVersionMismatch)
	}
	h.Epoch = binary.LittleEndian.Uint64(buf[25:])
	h.CacheBegin = binary.LittleEndian.Uint64(buf[33:])
	h.CacheEnd = binary.LittleEndian.Uint64(buf[41:])
	h.DagBegin = binary.LittleEndian.Uint64(buf[49:])
	h.DagEnd = binary.LittleEndian.Uint64(buf[57:])
	return h, nil
}

// minimumFilesize computes the smallest legal file size for a DAG file of
// the given epoch, from the parsed epoch rather than a hardcoded constant —
// the original source hardcodes 1090516865, which only matches epoch 0 and
// silently misvalidates every later epoch.
func minimumFilesize(epoch uint64) uint64 {
	repBlock := EpochFirstBlock(epoch) + 1
	return uint64(dagHeaderSize) + CacheSize(repBlock) + FullSize(repBlock)
}

// SaveDag writes d to path in the versioned container format of spec.md
// §4.7: header, then raw cache bytes, then raw DAG bytes. progress is
// reported as PhaseCacheSaving over the cache bytes then PhaseDagSaving over
// the DAG bytes.
func SaveDag(d *Dag, path string, progress ProgressFunc) error {
	prog := newProgressor(progress, 1)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("egihash: create %s: %w", path, err)
	}
	defer f.Close()

	cache := d.Cache()
	h := dagHeader{
		Major:      dagMajor,
		Revision:   dagRevision,
		Minor:      dagMinor,
		Epoch:      d.Epoch(),
		CacheBegin: dagHeaderSize,
		CacheEnd:   dagHeaderSize + uint64(len(cache.Bytes())),
		DagBegin:   dagHeaderSize + uint64(len(cache.Bytes())),
		DagEnd:     dagHeaderSize + uint64(len(cache.Bytes())) + uint64(len(d.Bytes())),
	}
	headerBuf := encodeHeader(h)
	if !bytes.Equal(headerBuf[0:dagMagicSize], dagMagic) {
		return fmt.Errorf("egihash: internal magic mismatch: %w", ErrDagCorrupt)
	}

	if _, err := f.Write(headerBuf); err != nil {
		return fmt.Errorf("egihash: write header: %w", ErrIo)
	}

	cacheBytes := cache.Bytes()
	chunk := 1 << 20
	for off := 0; off < len(cacheBytes); off += chunk {
		end := off + chunk
		if end > len(cacheBytes) {
			end = len(cacheBytes)
		}
		if _, err := f.Write(cacheBytes[off:end]); err != nil {
			return fmt.Errorf("egihash: write cache: %w", ErrIo)
		}
		if !prog.report(uint64(end), uint64(len(cacheBytes)), PhaseCacheSaving) {
			return ErrCancelled
		}
	}

	dagBytes := d.Bytes()
	for off := 0; off < len(dagBytes); off += chunk {
		end := off + chunk
		if end > len(dagBytes) {
			end = len(dagBytes)
		}
		if _, err := f.Write(dagBytes[off:end]); err != nil {
			return fmt.Errorf("egihash: write dag: %w", ErrIo)
		}
		if !prog.report(uint64(end), uint64(len(dagBytes)), PhaseDagSaving) {
			return ErrCancelled
		}
	}
	log.Debug("egihash: saved dag", "path", path, "epoch", d.Epoch())
	return nil
}

// LoadDag reads a DAG file written by SaveDag, validating header, version
// and range fields per spec.md §4.7, and reconstructs a fresh Cache and Dag
// of the declared epoch rather than mutating any existing state in place.
func LoadDag(path string, progress ProgressFunc) (*Dag, error) {
	prog := newProgressor(progress, 1)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("egihash: open %s: %w", path, err)
	}
	closeFile := true
	defer func() {
		if closeFile {
			f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("egihash: stat %s: %w", path, err)
	}
	filesize := uint64(info.Size())

	hdrBuf := make([]byte, dagHeaderSize)
	if _, err := io.ReadFull(f, hdrBuf); err != nil {
		return nil, fmt.Errorf("egihash: read header: %w", ErrIo)
	}
	h, err := decodeHeader(hdrBuf)
	if err != nil {
		return nil, err
	}

	if filesize < minimumFilesize(h.Epoch) {
		return nil, fmt.Errorf("egihash: file too short for epoch %d: %w", h.Epoch, ErrDagCorrupt)
	}
	repBlock := EpochFirstBlock(h.Epoch) + 1
	wantCacheSize := CacheSize(repBlock)
	wantFullSize := FullSize(repBlock)

	if h.CacheEnd <= h.CacheBegin || h.CacheEnd-h.CacheBegin != wantCacheSize {
		return nil, fmt.Errorf("egihash: cache range invalid: %w", ErrDagCorrupt)
	}
	if h.DagEnd <= h.DagBegin || h.DagEnd-h.DagBegin != wantFullSize {
		return nil, fmt.Errorf("egihash: dag range invalid: %w", ErrDagCorrupt)
	}
	if h.DagBegin != h.CacheEnd {
		return nil, fmt.Errorf("egihash: dag does not follow cache contiguously: %w", ErrDagCorrupt)
	}
	if h.DagEnd > filesize {
		return nil, fmt.Errorf("egihash: dag range exceeds file size: %w", ErrDagCorrupt)
	}

	// The whole file is mapped and Cache/Dag alias the mapped bytes directly
	// rather than being copied into freshly allocated slices — for a
	// multi-gigabyte DAG that copy would be the dominant cost of loading.
	// The mapping stays alive for as long as the returned *Dag (and the
	// *Cache reachable from it) is in use; see the closer/finalizer below.
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("egihash: mmap %s: %w", path, err)
	}
	closeFile = false // the mapping keeps working after f.Close() on the platforms mmap-go supports, but we keep f open and close it alongside the mapping for clarity

	if !prog.report(wantCacheSize, wantCacheSize, PhaseCacheLoading) {
		m.Unmap()
		f.Close()
		return nil, ErrCancelled
	}
	if !prog.report(wantFullSize, wantFullSize, PhaseDagLoading) {
		m.Unmap()
		f.Close()
		return nil, ErrCancelled
	}

	cacheData := []byte(m)[h.CacheBegin:h.CacheEnd:h.CacheEnd]
	dagData := []byte(m)[h.DagBegin:h.DagEnd:h.DagEnd]

	unmap := func() error {
		err := m.Unmap()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}

	cache := &Cache{epoch: h.Epoch, data: cacheData}
	dag := &Dag{epoch: h.Epoch, cache: cache, data: dagData, closer: unmap}
	// The cache is only ever reached through dag.Cache() for a loaded DAG, so
	// the finalizer lives on the Dag alone; unmapping through dag.Close() (or
	// GC, via this backstop) invalidates cache.data too.
	runtime.SetFinalizer(dag, func(d *Dag) {
		d.Close()
	})
	log.Debug("egihash: loaded dag", "path", path, "epoch", h.Epoch)
	return dag, nil
}
