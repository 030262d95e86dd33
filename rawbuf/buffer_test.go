package rawbuf

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/rawvec/alloc"
)

func TestBuffer_GrabRelease(t *testing.T) {
	before := alloc.Snapshot()

	var b Buffer[int64]
	require.NoError(t, b.Grab(16))
	require.Equal(t, 16, b.Cap())

	b.Release()
	require.Equal(t, 0, b.Cap())

	after := alloc.Snapshot()
	require.Equal(t, before.BytesLive, after.BytesLive)
	require.Equal(t, before.Reservations+1, after.Reservations)
	require.Equal(t, before.Releases+1, after.Releases)
}

func TestBuffer_GrabZero(t *testing.T) {
	before := alloc.Snapshot()

	var b Buffer[int]
	require.NoError(t, b.Grab(0))
	require.Equal(t, 0, b.Cap())

	// Capacity 0 must not touch the allocator.
	require.Equal(t, before, alloc.Snapshot())

	b.Release()
	require.Equal(t, before, alloc.Snapshot())
}

func TestBuffer_GrabError(t *testing.T) {
	alloc.SetLimit(64)
	defer alloc.SetLimit(0)

	var b Buffer[int64]
	err := b.Grab(1024)
	require.ErrorIs(t, err, alloc.ErrExhausted)
	require.Equal(t, 0, b.Cap())
}

func TestBuffer_Slots(t *testing.T) {
	var b Buffer[uint32]
	require.NoError(t, b.Grab(8))
	defer b.Release()

	// Slots are contiguous.
	for i := 0; i < 7; i++ {
		lo := uintptr(unsafe.Pointer(b.Slot(i)))
		hi := uintptr(unsafe.Pointer(b.Slot(i + 1)))
		require.Equal(t, unsafe.Sizeof(uint32(0)), hi-lo)
	}

	// One-past-end addressing is legal.
	end := b.Slot(8)
	require.NotNil(t, end)

	for i := 0; i < 8; i++ {
		*b.Slot(i) = uint32(i * i)
	}
	for i := 0; i < 8; i++ {
		require.Equal(t, uint32(i*i), *b.Slot(i))
	}
}

func TestBuffer_Swap(t *testing.T) {
	var a, b Buffer[int]
	require.NoError(t, a.Grab(4))
	require.NoError(t, b.Grab(2))
	defer a.Release()
	defer b.Release()

	*a.Slot(0) = 11
	*b.Slot(0) = 22

	a.Swap(&b)
	require.Equal(t, 2, a.Cap())
	require.Equal(t, 4, b.Cap())
	require.Equal(t, 22, *a.Slot(0))
	require.Equal(t, 11, *b.Slot(0))
}

func TestBuffer_TakeFrom(t *testing.T) {
	var a, b Buffer[int]
	require.NoError(t, b.Grab(4))
	defer a.Release()

	*b.Slot(2) = 77

	a.TakeFrom(&b)
	require.Equal(t, 4, a.Cap())
	require.Equal(t, 77, *a.Slot(2))
	require.Equal(t, 0, b.Cap())

	// Self-transfer is a guarded no-op.
	a.TakeFrom(&a)
	require.Equal(t, 4, a.Cap())
	require.Equal(t, 77, *a.Slot(2))
}

func TestBuffer_TakeFromReleasesOwn(t *testing.T) {
	before := alloc.Snapshot()

	var a, b Buffer[int64]
	require.NoError(t, a.Grab(8))
	require.NoError(t, b.Grab(8))

	a.TakeFrom(&b)
	a.Release()

	after := alloc.Snapshot()
	require.Equal(t, before.BytesLive, after.BytesLive)
	require.Equal(t, before.Reservations+2, after.Reservations)
	require.Equal(t, before.Releases+2, after.Releases)
}
