// Package rawvec implements a generic, contiguous, growable array on top of
// raw slot storage.
//
// Unlike a Go slice, an Array keeps "allocated capacity" and "live element
// count" as two independently tracked quantities: the rawbuf.Buffer it owns
// is nothing but uninitialized slots, and the array constructs and destroys
// elements in those slots one at a time. That split is what makes the
// failure guarantees below possible.
//
// # Quick Start
//
//	a := rawvec.New[int]()
//	_ = a.PushBack(1)
//	_ = a.PushBack(2)
//	_ = a.Insert(1, 99) // [1, 99, 2]
//	a.Erase(0)          // [99, 2]
//	for v := range a.Values() {
//	    fmt.Println(v)
//	}
//	a.Close()
//
// # Element Hooks
//
// Plain values need no configuration: copies are bitwise, destruction zeroes
// the slot. Resource-owning or instrumented element types install lifecycle
// hooks at construction:
//
//	a := rawvec.New[*File](
//	    rawvec.WithClone(cloneFile),
//	    rawvec.WithDrop(closeFile),
//	)
//
// A custom clone without a custom move switches buffer relocation from
// moving to cloning, so a mid-relocation failure leaves the original
// elements intact.
//
// # Failure Model
//
// Operations that can fail return an error; nothing panics in release
// builds. Pure relocation paths (NewWithSize, Clone, Reserve, ShrinkToFit
// and the growth paths of PushBack, EmplaceBack, Insert, Emplace) provide
// the strong guarantee: after an error the array is exactly as it was. The
// in-place reuse path of CopyFrom trades that for speed and provides only a
// basic guarantee; see CopyFrom. No path leaks raw storage, which the alloc
// package accounting can verify.
//
// Precondition violations (out-of-range indices, PopBack or Erase on an
// empty array) are undefined in release builds and assert under the
// rawvecdebug build tag:
//
//	go test -tags rawvecdebug ./...
//
// # Concurrency
//
// An Array is single-threaded by design: no internal locking, no blocking
// operations. Concurrent read-only access is safe while nothing mutates.
package rawvec
