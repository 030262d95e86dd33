package alloc

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"
)

var (
	// ErrExhausted is returned when a reservation would exceed the configured limit.
	ErrExhausted = errors.New("alloc: memory limit exceeded")
	// ErrSizeOverflow is returned when a slot count does not fit in a byte size.
	ErrSizeOverflow = errors.New("alloc: size overflow")
)

// Stats tracks reservation accounting.
//
// Note on semantics:
//   - Reservations/Releases: historical counts, never reset by Release
//   - BytesLive: bytes currently reserved and not yet released
//   - BytesPeak: high-water mark of BytesLive
type Stats struct {
	Reservations uint64
	Releases     uint64
	BytesLive    uint64
	BytesPeak    uint64
}

type atomicStats struct {
	reservations atomic.Uint64
	releases     atomic.Uint64
	bytesLive    atomic.Int64
	bytesPeak    atomic.Int64
}

var (
	stats atomicStats
	limit atomic.Int64 // 0 = unlimited
)

// SetLimit caps live reservations at the given byte count. A limit of 0
// removes the cap. A reservation that would exceed the limit fails with
// ErrExhausted and changes no accounting state.
func SetLimit(bytes int64) {
	limit.Store(bytes)
}

// Slots reserves storage for n values of T and returns the address of the
// first slot. n == 0 reserves nothing and returns nil without touching the
// accounting.
//
// The backing memory is obtained as a typed []T so the garbage collector
// scans pointer-bearing element types correctly. It stays reachable for as
// long as the returned pointer does; Release only updates the accounting.
func Slots[T any](n int) (unsafe.Pointer, error) {
	if n == 0 {
		return nil, nil
	}
	size, err := byteSize[T](n)
	if err != nil {
		return nil, err
	}

	live := stats.bytesLive.Add(size)
	if l := limit.Load(); l > 0 && live > l {
		stats.bytesLive.Add(-size)
		return nil, fmt.Errorf("%w: need %d bytes, %d live, limit %d", ErrExhausted, size, live-size, l)
	}
	updatePeak(live)
	stats.reservations.Add(1)

	return unsafe.Pointer(&make([]T, n)[0]), nil //nolint:gosec // raw slot storage
}

// Release returns the reservation for n slots of T to the accounting. The
// memory itself is reclaimed by the garbage collector once unreferenced, so
// like the other pure-Go allocators the free is a bookkeeping operation only.
func Release[T any](p unsafe.Pointer, n int) {
	if p == nil || n == 0 {
		return
	}
	size, err := byteSize[T](n)
	if err != nil {
		return
	}
	stats.releases.Add(1)
	stats.bytesLive.Add(-size)
}

// Snapshot returns the current accounting counters.
func Snapshot() Stats {
	live := stats.bytesLive.Load()
	peak := stats.bytesPeak.Load()
	return Stats{
		Reservations: stats.reservations.Load(),
		Releases:     stats.releases.Load(),
		BytesLive:    clampUint64(live),
		BytesPeak:    clampUint64(peak),
	}
}

// ResetStats zeroes all counters. Intended for tests that balance
// reservations against releases.
func ResetStats() {
	stats.reservations.Store(0)
	stats.releases.Store(0)
	stats.bytesLive.Store(0)
	stats.bytesPeak.Store(0)
}

func byteSize[T any](n int) (int64, error) {
	var zero T
	elem := int64(unsafe.Sizeof(zero))
	if n < 0 || (elem > 0 && int64(n) > math.MaxInt64/elem) {
		return 0, fmt.Errorf("%w: %d slots of %d bytes", ErrSizeOverflow, n, elem)
	}
	return int64(n) * elem, nil
}

func updatePeak(live int64) {
	for {
		peak := stats.bytesPeak.Load()
		if live <= peak || stats.bytesPeak.CompareAndSwap(peak, live) {
			return
		}
	}
}

func clampUint64(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
