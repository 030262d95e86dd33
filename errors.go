package rawvec

import "github.com/hupe1980/rawvec/alloc"

// Reservation failures surface unchanged from the alloc package. The aliases
// keep errors.Is checks local to rawvec for callers that never import alloc.
var (
	// ErrExhausted is returned when a reservation exceeds the configured
	// memory limit.
	ErrExhausted = alloc.ErrExhausted
	// ErrSizeOverflow is returned when a requested capacity does not fit in
	// a byte size.
	ErrSizeOverflow = alloc.ErrSizeOverflow
)
