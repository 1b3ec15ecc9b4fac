package egihash

import "errors"

// Error kinds, exposed as sentinel values per spec.md §7. Wrap with
// fmt.Errorf("...: %w", ErrDagCorrupt) for context; compare with errors.Is.
var (
	// ErrCancelled is returned when a progress callback returns false.
	ErrCancelled = errors.New("egihash: build cancelled")
	// ErrHashBackend is returned when the underlying Keccak primitive fails.
	ErrHashBackend = errors.New("egihash: hash backend failure")
	// ErrDagCorrupt is returned when a loaded DAG file fails header or range validation.
	ErrDagCorrupt = errors.New("egihash: dag file corrupt")
	// ErrVersionMismatch is returned when a loaded DAG file's version differs from the one this engine produces.
	ErrVersionMismatch = errors.New("egihash: dag file version mismatch")
	// ErrIo is returned for read/write/seek failures and truncated files.
	ErrIo = errors.New("egihash: io error")
	// ErrOutOfMemory is returned when an allocation for a cache or DAG fails.
	ErrOutOfMemory = errors.New("egihash: out of memory")
	// ErrRegistryBusy is returned on an internal invariant failure acquiring a registry entry.
	ErrRegistryBusy = errors.New("egihash: registry busy")
)
