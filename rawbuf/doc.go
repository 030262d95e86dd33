// Package rawbuf provides move-only ownership of uninitialized slot storage.
//
// A Buffer reserves space for a fixed number of slots of some element type
// and nothing more: it does not know which slots hold live values, it never
// runs element code, and releasing it tears down only the reservation. The
// split keeps "allocated capacity" and "live element count" as two
// independently tracked quantities, with the latter living in whatever
// container owns the buffer.
package rawbuf
