package alloc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlots_Basic(t *testing.T) {
	before := Snapshot()

	p, err := Slots[int64](8)
	require.NoError(t, err)
	require.NotNil(t, p)

	after := Snapshot()
	require.Equal(t, before.Reservations+1, after.Reservations)
	require.Equal(t, before.BytesLive+64, after.BytesLive)

	Release[int64](p, 8)
	final := Snapshot()
	require.Equal(t, before.BytesLive, final.BytesLive)
	require.Equal(t, after.Releases+1, final.Releases)
}

func TestSlots_Zero(t *testing.T) {
	before := Snapshot()

	p, err := Slots[int](0)
	require.NoError(t, err)
	require.Nil(t, p)

	require.Equal(t, before, Snapshot())

	// Releasing the empty reservation is a no-op as well.
	Release[int](nil, 0)
	require.Equal(t, before, Snapshot())
}

func TestSlots_SizeOverflow(t *testing.T) {
	before := Snapshot()

	_, err := Slots[int64](-1)
	require.ErrorIs(t, err, ErrSizeOverflow)

	if math.MaxInt == math.MaxInt64 {
		_, err = Slots[int64](math.MaxInt / 2)
		require.ErrorIs(t, err, ErrSizeOverflow)
	}

	require.Equal(t, before, Snapshot())
}

func TestSlots_Limit(t *testing.T) {
	ResetStats()
	SetLimit(128)
	defer SetLimit(0)

	p, err := Slots[int64](8) // 64 bytes
	require.NoError(t, err)

	before := Snapshot()
	_, err = Slots[int64](16) // would be 192 bytes live
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, before, Snapshot())

	// Still room below the limit.
	q, err := Slots[int64](8)
	require.NoError(t, err)

	Release[int64](p, 8)
	Release[int64](q, 8)
	require.Equal(t, uint64(0), Snapshot().BytesLive)
}

func TestSnapshot_Peak(t *testing.T) {
	ResetStats()

	p, err := Slots[byte](1024)
	require.NoError(t, err)
	Release[byte](p, 1024)

	s := Snapshot()
	require.Equal(t, uint64(0), s.BytesLive)
	require.Equal(t, uint64(1024), s.BytesPeak)
}

func TestSlots_TypedStorage(t *testing.T) {
	// Pointer-bearing element types must survive garbage collection, which
	// only works because the backing memory is allocated as []T.
	type node struct {
		next *node
		v    int
	}

	p, err := Slots[node](4)
	require.NoError(t, err)
	require.NotNil(t, p)
	Release[node](p, 4)
}
