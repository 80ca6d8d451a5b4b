package slotalloc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"region-rbtree/pkg/slotalloc"
)

func TestAllocReturnsSmallestFreeIndex(t *testing.T) {
	t.Parallel()

	a := slotalloc.NewBitmapAllocator()

	first, err := a.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), first)

	second, err := a.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), second)

	require.NoError(t, a.Dealloc(first))

	third, err := a.Alloc()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), third, "dealloc should free the smallest index for reuse")
}

func TestAllocGrowsPastOneWord(t *testing.T) {
	t.Parallel()

	a := slotalloc.NewBitmapAllocator()

	var last uint32
	for i := 0; i < 70; i++ {
		idx, err := a.Alloc()
		require.NoError(t, err)
		last = idx
	}

	assert.Equal(t, uint32(69), last)
	assert.Equal(t, 70, a.Used())
}

func TestDeallocOfUnallocatedIndexPanics(t *testing.T) {
	t.Parallel()

	a := slotalloc.NewBitmapAllocator()

	assert.Panics(t, func() {
		_ = a.Dealloc(500)
	})
}

func TestUsedTracksLiveAllocations(t *testing.T) {
	t.Parallel()

	a := slotalloc.NewBitmapAllocator()

	for i := 0; i < 10; i++ {
		_, err := a.Alloc()
		require.NoError(t, err)
	}

	assert.Equal(t, 10, a.Used())

	idx, err := a.Alloc()
	require.NoError(t, err)
	require.NoError(t, a.Dealloc(idx))

	assert.Equal(t, 10, a.Used())
}
