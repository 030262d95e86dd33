package rawvec

import "iter"

// Values returns a forward cursor over the live elements [0, Len).
//
// The cursor reads the array lazily: any reallocating or shifting operation
// (growth, Insert, Erase, Swap, ...) invalidates it, and resuming an
// invalidated cursor is undefined. Read-only traversal is safe.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(*a.buf.Slot(i)) {
				return
			}
		}
	}
}

// All returns a forward cursor over index/element pairs of the live prefix.
// The invalidation rules of Values apply.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.size; i++ {
			if !yield(i, *a.buf.Slot(i)) {
				return
			}
		}
	}
}
