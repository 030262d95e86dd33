package rawbuf

import (
	"unsafe"

	"github.com/hupe1980/rawvec/alloc"
	"github.com/hupe1980/rawvec/internal/debug"
)

// Buffer owns a contiguous block of raw slot storage for values of T. It
// never constructs or destroys elements and keeps no record of which slots
// hold live values; that bookkeeping belongs entirely to the owner.
//
// A Buffer is move-only. Duplicating one by value would alias the storage
// behind two owners without any element-aware copying, so value copies are
// flagged statically by go vet via the embedded noCopy guard. Transfer
// ownership with Swap or TakeFrom instead.
//
// The zero value is an empty buffer with no reservation.
type Buffer[T any] struct {
	noCopy noCopy

	ptr unsafe.Pointer
	cap int
}

// Grab reserves storage for capacity slots. capacity == 0 leaves the buffer
// empty without touching the allocator. Reservation errors propagate
// unchanged. The buffer must be empty; grabbing over an existing reservation
// is a contract violation checked in debug builds.
func (b *Buffer[T]) Grab(capacity int) error {
	debug.Assert(b.cap == 0, "rawbuf: Grab on a non-empty buffer")
	debug.Assert(capacity >= 0, "rawbuf: negative capacity %d", capacity)
	if capacity == 0 {
		return nil
	}
	p, err := alloc.Slots[T](capacity)
	if err != nil {
		return err
	}
	b.ptr = p
	b.cap = capacity
	return nil
}

// Release drops the reservation without running any element teardown; the
// owner destroys live elements first. The buffer reverts to the empty state
// and may be reused. Safe on an empty buffer.
func (b *Buffer[T]) Release() {
	alloc.Release[T](b.ptr, b.cap)
	b.ptr = nil
	b.cap = 0
}

// Cap returns the slot count of the reservation.
func (b *Buffer[T]) Cap() int {
	return b.cap
}

// Slot returns the address of slot i. i may equal Cap, yielding the
// one-past-end address; anything greater is a contract violation checked
// only in debug builds. No liveness is implied.
func (b *Buffer[T]) Slot(i int) *T {
	debug.Assert(i >= 0 && i <= b.cap, "rawbuf: slot %d out of range [0, %d]", i, b.cap)
	return (*T)(unsafe.Add(b.ptr, uintptr(i)*sizeOf[T]())) //nolint:gosec // raw slot addressing
}

// Swap exchanges storage and capacity with other in constant time. Nothing
// is constructed or destroyed.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.ptr, other.ptr = other.ptr, b.ptr
	b.cap, other.cap = other.cap, b.cap
}

// TakeFrom releases b's own reservation, assumes other's storage and leaves
// other empty. Taking from itself is a guarded no-op.
func (b *Buffer[T]) TakeFrom(other *Buffer[T]) {
	if b == other {
		return
	}
	b.Release()
	b.ptr = other.ptr
	b.cap = other.cap
	other.ptr = nil
	other.cap = 0
}

func sizeOf[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// noCopy triggers go vet's copylocks check on value copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
