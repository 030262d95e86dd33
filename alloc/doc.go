// Package alloc reserves raw, typed slot storage for the container packages.
//
// The package keeps two quantities deliberately separate from any element
// bookkeeping: how many bytes are reserved and how many reservations are
// outstanding. Callers own the lifecycle of whatever they construct inside a
// reservation; alloc never runs element code.
//
// An optional byte limit (SetLimit) makes reservation fallible, which is how
// allocation failure is exercised in tests: exceeding the limit returns
// ErrExhausted with no accounting change.
//
// # Concurrency Model
//
// Counters are atomic so leak checks stay clean under the race detector.
// SetLimit and ResetStats are not meant to run concurrently with
// reservations.
package alloc
