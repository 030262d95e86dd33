package rawvec

import (
	"log/slog"

	"github.com/hupe1980/rawvec/internal/debug"
	"github.com/hupe1980/rawvec/rawbuf"
)

// Stats counts buffer activity for one array.
type Stats struct {
	Growths   uint64 // buffer replacements (growth and shrink)
	Relocated uint64 // elements moved or cloned between buffers
}

// Array is a contiguous growable container for values of T.
//
// It owns exactly one raw buffer plus a live-element count. Slots [0, Len)
// hold live elements; slots [Len, Cap) are raw storage the array has never
// constructed into or has already torn down. The invariant Len <= Cap holds
// across every operation.
//
// An Array is not safe for concurrent mutation. Concurrent readers are fine
// as long as nothing mutates.
type Array[T any] struct {
	buf    rawbuf.Buffer[T]
	size   int
	hooks  hooks[T]
	logger *slog.Logger
	stats  Stats
}

// New returns an empty array with no storage reserved.
func New[T any](opts ...Option[T]) *Array[T] {
	a := &Array[T]{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewWithSize returns an array holding n default-constructed elements in a
// reservation of exactly n slots. Construction is all-or-nothing: if the
// reservation or any element fails, everything built so far is torn down
// before the error returns.
func NewWithSize[T any](n int, opts ...Option[T]) (*Array[T], error) {
	a := New(opts...)
	if err := a.buf.Grab(n); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		v, err := a.hooks.newValue()
		if err != nil {
			a.destroyRange(&a.buf, 0, i)
			a.buf.Release()
			return nil, err
		}
		*a.buf.Slot(i) = v
	}
	a.size = n
	return a, nil
}

// Take returns a new array that assumes src's storage, elements and hooks,
// leaving src empty with no reservation. No element constructors or
// destructors run; the transfer is O(1).
func Take[T any](src *Array[T]) *Array[T] {
	dst := &Array[T]{hooks: src.hooks, logger: src.logger}
	dst.buf.Swap(&src.buf)
	dst.size = src.size
	src.size = 0
	return dst
}

// Clone returns a deep copy: a reservation of exactly Len slots with every
// element clone-constructed in order. On a partial failure everything
// constructed so far is destroyed and the storage released; the receiver is
// never touched.
func (a *Array[T]) Clone() (*Array[T], error) {
	c := &Array[T]{hooks: a.hooks, logger: a.logger}
	if err := c.buf.Grab(a.size); err != nil {
		return nil, err
	}
	for i := 0; i < a.size; i++ {
		v, err := a.hooks.cloneValue(a.buf.Slot(i))
		if err != nil {
			a.destroyRange(&c.buf, 0, i)
			c.buf.Release()
			return nil, err
		}
		*c.buf.Slot(i) = v
	}
	c.size = a.size
	return c, nil
}

// CopyFrom makes a hold a copy of other's elements. Copying from itself is a
// guarded no-op.
//
// When other's length exceeds a's capacity, a full temporary copy is built
// and swapped in, so any failure leaves a untouched (strong guarantee).
// Otherwise existing storage is reused: the overlapping prefix is assigned
// element-wise, extra elements are clone-constructed, surplus elements are
// dropped. The reuse path avoids a reallocation at the cost of a weaker
// guarantee: a failure while assigning leaves the prefix partially updated,
// and a failure while constructing extras abandons the extras beyond Len
// without running their drop hooks.
func (a *Array[T]) CopyFrom(other *Array[T]) error {
	if a == other {
		return nil
	}

	if other.size > a.buf.Cap() {
		var nb rawbuf.Buffer[T]
		if err := nb.Grab(other.size); err != nil {
			return err
		}
		for i := 0; i < other.size; i++ {
			v, err := a.hooks.cloneValue(other.buf.Slot(i))
			if err != nil {
				a.destroyRange(&nb, 0, i)
				nb.Release()
				return err
			}
			*nb.Slot(i) = v
		}
		a.commit(&nb, other.size)
		return nil
	}

	overlap := min(a.size, other.size)
	for i := 0; i < overlap; i++ {
		if err := a.hooks.assignValue(a.buf.Slot(i), other.buf.Slot(i)); err != nil {
			return err
		}
	}
	for i := a.size; i < other.size; i++ {
		v, err := a.hooks.cloneValue(other.buf.Slot(i))
		if err != nil {
			return err
		}
		*a.buf.Slot(i) = v
	}
	for i := other.size; i < a.size; i++ {
		a.hooks.dropValue(a.buf.Slot(i))
	}
	a.size = other.size
	return nil
}

// TakeFrom moves other's contents into a in constant time by swapping
// buffers and lengths; a's previous contents end up in other. Never fails;
// taking from itself is a guarded no-op.
func (a *Array[T]) TakeFrom(other *Array[T]) {
	a.Swap(other)
}

// Swap exchanges contents, capacity, hooks and counters with other in
// constant time. Swapping with itself is a guarded no-op.
func (a *Array[T]) Swap(other *Array[T]) {
	if a == other {
		return
	}
	a.buf.Swap(&other.buf)
	a.size, other.size = other.size, a.size
	a.hooks, other.hooks = other.hooks, a.hooks
	a.logger, other.logger = other.logger, a.logger
	a.stats, other.stats = other.stats, a.stats
}

// Reserve ensures capacity for at least n elements. It is a no-op when the
// reservation already suffices. Growth relocates every live element into a
// fresh buffer and swaps it in only after full success, so a failure leaves
// the array untouched (strong guarantee).
func (a *Array[T]) Reserve(n int) error {
	if n <= a.buf.Cap() {
		return nil
	}
	return a.regrow(n)
}

// ShrinkToFit releases excess capacity by relocating into storage of exactly
// Len slots. Strong guarantee, like Reserve.
func (a *Array[T]) ShrinkToFit() error {
	if a.buf.Cap() == a.size {
		return nil
	}
	if a.size == 0 {
		a.buf.Release()
		return nil
	}
	return a.regrow(a.size)
}

// Resize sets the length to n. Growth reserves capacity and
// default-constructs the new tail; a tail failure destroys the partial tail
// and leaves the length unchanged. Shrinking drops the excess tail in place.
func (a *Array[T]) Resize(n int) error {
	debug.Assert(n >= 0, "rawvec: negative size %d", n)
	switch {
	case n == a.size:
		return nil
	case n < a.size:
		a.destroyRange(&a.buf, n, a.size)
		a.size = n
		return nil
	default:
		if err := a.Reserve(n); err != nil {
			return err
		}
		for i := a.size; i < n; i++ {
			v, err := a.hooks.newValue()
			if err != nil {
				a.destroyRange(&a.buf, a.size, i)
				return err
			}
			*a.buf.Slot(i) = v
		}
		a.size = n
		return nil
	}
}

// PushBack appends v. When the reservation is exhausted, capacity doubles
// (amortized O(1) appends) via the staged-commit growth path, which leaves
// the array untouched on any failure.
func (a *Array[T]) PushBack(v T) error {
	_, err := a.Emplace(a.size, func(slot *T) error {
		*slot = v
		return nil
	})
	return err
}

// EmplaceBack constructs a new last element directly in its slot and returns
// the slot. ctor receives a zeroed slot; a nil ctor default-constructs. See
// Emplace for the failure contract.
func (a *Array[T]) EmplaceBack(ctor func(*T) error) (*T, error) {
	return a.Emplace(a.size, ctor)
}

// Insert inserts v at index i, shifting later elements one slot right.
// i may equal Len, which appends.
func (a *Array[T]) Insert(i int, v T) error {
	_, err := a.Emplace(i, func(slot *T) error {
		*slot = v
		return nil
	})
	return err
}

// Emplace constructs a new element at index i in [0, Len], shifting later
// elements one slot right, and returns its slot. ctor receives a zeroed slot;
// a nil ctor default-constructs.
//
// On the growth path the new element is constructed into the replacement
// buffer before any existing element is relocated, so a failure anywhere,
// including the new element's own construction, leaves the array untouched.
// On the in-place shifting path the value is staged first for the same
// reason. Length increments only after full success.
func (a *Array[T]) Emplace(i int, ctor func(*T) error) (*T, error) {
	debug.Assert(i >= 0 && i <= a.size, "rawvec: emplace index %d out of range [0, %d]", i, a.size)
	if ctor == nil {
		ctor = func(slot *T) error {
			v, err := a.hooks.newValue()
			if err != nil {
				return err
			}
			*slot = v
			return nil
		}
	}

	if a.size == a.buf.Cap() {
		return a.growEmplace(i, ctor)
	}

	if i == a.size {
		slot := a.buf.Slot(i)
		var zero T
		*slot = zero
		if err := ctor(slot); err != nil {
			return nil, err
		}
		a.size++
		return slot, nil
	}

	var staged T
	if err := ctor(&staged); err != nil {
		return nil, err
	}
	// Extend the live range by one with a move of the last element, then
	// shift backwards so no two live elements ever alias the same slot.
	*a.buf.Slot(a.size) = a.hooks.moveValue(a.buf.Slot(a.size - 1))
	for j := a.size - 1; j > i; j-- {
		a.hooks.moveAssignValue(a.buf.Slot(j), a.buf.Slot(j-1))
	}
	a.hooks.moveAssignValue(a.buf.Slot(i), &staged)
	a.size++
	return a.buf.Slot(i), nil
}

// PopBack destroys the last element and decrements the length. Capacity is
// unchanged. The array must not be empty; checked only in debug builds.
func (a *Array[T]) PopBack() {
	debug.Assert(a.size > 0, "rawvec: PopBack on empty array")
	a.size--
	a.hooks.dropValue(a.buf.Slot(a.size))
}

// Erase removes the element at index i, shifting later elements one slot
// left via move-assignment. No reallocation happens; the vacated tail slot
// reverts to raw storage. The index is checked only in debug builds.
func (a *Array[T]) Erase(i int) {
	debug.Assert(i >= 0 && i < a.size, "rawvec: erase index %d out of range [0, %d)", i, a.size)
	a.hooks.dropValue(a.buf.Slot(i))
	for j := i; j < a.size-1; j++ {
		a.hooks.moveAssignValue(a.buf.Slot(j), a.buf.Slot(j+1))
	}
	a.size--
}

// At returns a pointer to element i. The index is checked only in debug
// builds; out of range in a release build addresses raw storage with
// undefined results, a deliberate low-level-primitive tradeoff.
func (a *Array[T]) At(i int) *T {
	debug.Assert(i >= 0 && i < a.size, "rawvec: index %d out of range [0, %d)", i, a.size)
	return a.buf.Slot(i)
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	return a.size
}

// Cap returns the number of reserved slots.
func (a *Array[T]) Cap() int {
	return a.buf.Cap()
}

// Stats returns the buffer activity counters of this array.
func (a *Array[T]) Stats() Stats {
	return a.stats
}

// Clear destroys all live elements but keeps the reservation.
func (a *Array[T]) Clear() {
	a.destroyRange(&a.buf, 0, a.size)
	a.size = 0
}

// Close destroys all live elements and releases the storage. The array
// reverts to the empty state and may be reused.
func (a *Array[T]) Close() {
	a.Clear()
	a.buf.Release()
}

// regrow relocates the live prefix into a fresh buffer of capacity n and
// swaps it in only after every element relocated.
func (a *Array[T]) regrow(n int) error {
	var nb rawbuf.Buffer[T]
	if err := nb.Grab(n); err != nil {
		return err
	}
	if err := a.relocate(&nb, 0, a.size, 0); err != nil {
		nb.Release()
		return err
	}
	a.commit(&nb, a.size)
	return nil
}

// growEmplace builds a replacement buffer of the doubled capacity with the
// new element constructed at slot i before anything else, then relocates the
// prefix [0, i) and the suffix [i, size) around it. Each phase unwinds
// exactly what has been built on failure; the current buffer is never mutated
// before the final swap.
func (a *Array[T]) growEmplace(i int, ctor func(*T) error) (*T, error) {
	var nb rawbuf.Buffer[T]
	if err := nb.Grab(a.nextCap()); err != nil {
		return nil, err
	}

	slot := nb.Slot(i)
	var zero T
	*slot = zero
	if err := ctor(slot); err != nil {
		nb.Release()
		return nil, err
	}

	if err := a.relocate(&nb, 0, i, 0); err != nil {
		a.hooks.dropValue(slot)
		nb.Release()
		return nil, err
	}
	if err := a.relocate(&nb, i, a.size, i+1); err != nil {
		a.destroyRange(&nb, 0, i+1)
		nb.Release()
		return nil, err
	}

	a.commit(&nb, a.size+1)
	return a.buf.Slot(i), nil
}

// relocate constructs the elements [from, to) of the current buffer into dst
// starting at dstOff. It clones when the hooks demand copy relocation and
// moves otherwise. On a clone failure the elements this call constructed are
// destroyed before the error returns; the source is untouched. Moves cannot
// fail.
func (a *Array[T]) relocate(dst *rawbuf.Buffer[T], from, to, dstOff int) error {
	if a.hooks.relocateByClone() {
		for i := from; i < to; i++ {
			v, err := a.hooks.cloneValue(a.buf.Slot(i))
			if err != nil {
				a.destroyRange(dst, dstOff, dstOff+i-from)
				return err
			}
			*dst.Slot(dstOff + i - from) = v
		}
	} else {
		for i := from; i < to; i++ {
			*dst.Slot(dstOff + i - from) = a.hooks.moveValue(a.buf.Slot(i))
		}
	}
	a.stats.Relocated += uint64(to - from)
	return nil
}

// commit swaps nb in as the live buffer and adopts newSize, then tears down
// whatever the previous buffer still holds, either moved-from shells or the
// originals of a clone relocation, and releases it.
func (a *Array[T]) commit(nb *rawbuf.Buffer[T], newSize int) {
	oldSize := a.size
	a.buf.Swap(nb)
	a.size = newSize
	a.destroyRange(nb, 0, oldSize)
	nb.Release()

	a.stats.Growths++
	if a.logger != nil {
		a.logger.Debug("buffer replaced", "len", a.size, "cap", a.buf.Cap())
	}
}

func (a *Array[T]) destroyRange(buf *rawbuf.Buffer[T], from, to int) {
	for i := from; i < to; i++ {
		a.hooks.dropValue(buf.Slot(i))
	}
}

// nextCap doubles the reservation, starting at one slot.
func (a *Array[T]) nextCap() int {
	if c := a.buf.Cap(); c > 0 {
		return 2 * c
	}
	return 1
}
