package rawvec

import "log/slog"

// Option configures an Array at construction time.
//
// Go values are always bitwise-copyable and zero-constructible, so every
// element capability has a default; options refine them for resource-owning
// or instrumented element types. Hooks travel with the array: Clone, Take and
// Swap all carry them along.
type Option[T any] func(*Array[T])

// WithClone sets a fallible copy-construction hook. Setting a clone without
// a custom move also switches buffer relocation to cloning, which keeps the
// source intact until relocation fully succeeds (see Reserve).
func WithClone[T any](clone func(src *T) (T, error)) Option[T] {
	return func(a *Array[T]) {
		a.hooks.clone = clone
	}
}

// WithMove sets the move-construction hook. A move must not fail and must
// leave the source in a destroyed-equivalent state. The default is a bitwise
// copy that zeroes the source.
func WithMove[T any](move func(src *T) T) Option[T] {
	return func(a *Array[T]) {
		a.hooks.move = move
	}
}

// WithAssign sets the copy-assignment hook used when overwriting a live slot
// with a copy of another element. The default clones the source, drops the
// destination and stores the clone.
func WithAssign[T any](assign func(dst, src *T) error) Option[T] {
	return func(a *Array[T]) {
		a.hooks.assign = assign
	}
}

// WithMoveAssign sets the move-assignment hook used when overwriting a live
// slot during shifts. The default drops the destination and moves bitwise.
func WithMoveAssign[T any](moveAssign func(dst, src *T)) Option[T] {
	return func(a *Array[T]) {
		a.hooks.moveAssign = moveAssign
	}
}

// WithDefaultValue sets the fallible default-construction hook used by
// Resize growth and NewWithSize. The default yields the zero value.
func WithDefaultValue[T any](defaultNew func() (T, error)) Option[T] {
	return func(a *Array[T]) {
		a.hooks.defaultNew = defaultNew
	}
}

// WithDrop sets the destruction hook. Drop also runs on moved-from and
// zero-valued slots, so it must treat them as empty. The slot is zeroed
// after the hook returns.
func WithDrop[T any](drop func(*T)) Option[T] {
	return func(a *Array[T]) {
		a.hooks.drop = drop
	}
}

// WithLogger enables debug-level logging of buffer replacements. Nil
// disables logging (the default).
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(a *Array[T]) {
		a.logger = logger
	}
}

// hooks bundles the element lifecycle callbacks. A nil field means the
// default behavior for plain Go values.
type hooks[T any] struct {
	clone      func(src *T) (T, error)
	move       func(src *T) T
	assign     func(dst, src *T) error
	moveAssign func(dst, src *T)
	defaultNew func() (T, error)
	drop       func(*T)
}

func (h *hooks[T]) cloneValue(src *T) (T, error) {
	if h.clone != nil {
		return h.clone(src)
	}
	return *src, nil
}

func (h *hooks[T]) moveValue(src *T) T {
	if h.move != nil {
		return h.move(src)
	}
	v := *src
	var zero T
	*src = zero
	return v
}

func (h *hooks[T]) assignValue(dst, src *T) error {
	if h.assign != nil {
		return h.assign(dst, src)
	}
	v, err := h.cloneValue(src)
	if err != nil {
		return err
	}
	h.dropValue(dst)
	*dst = v
	return nil
}

func (h *hooks[T]) moveAssignValue(dst, src *T) {
	if h.moveAssign != nil {
		h.moveAssign(dst, src)
		return
	}
	h.dropValue(dst)
	*dst = h.moveValue(src)
}

func (h *hooks[T]) newValue() (T, error) {
	if h.defaultNew != nil {
		return h.defaultNew()
	}
	var zero T
	return zero, nil
}

func (h *hooks[T]) dropValue(p *T) {
	if h.drop != nil {
		h.drop(p)
	}
	var zero T
	*p = zero
}

// relocateByClone reports whether buffer relocation must copy instead of
// move: a custom clone with no custom move means moving is not known to be
// loss-free on failure, so relocation clones and keeps the source intact.
func (h *hooks[T]) relocateByClone() bool {
	return h.clone != nil && h.move == nil
}
