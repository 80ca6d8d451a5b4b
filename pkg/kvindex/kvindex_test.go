package kvindex_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"region-rbtree/pkg/kvindex"
	"region-rbtree/pkg/rbtree"
)

func TestPutGetDelete(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bin")

	idx, err := kvindex.Open(path, 8)
	require.NoError(t, err)

	defer idx.Close()

	_, err = idx.Put(rbtree.Uint64Key(42), 7)
	require.NoError(t, err)

	link, found := idx.Get(rbtree.Uint64Key(42))
	require.True(t, found)
	assert.EqualValues(t, 7, link)

	link, removed, err := idx.Delete(rbtree.Uint64Key(42))
	require.NoError(t, err)
	assert.True(t, removed)
	assert.EqualValues(t, 7, link)

	_, found = idx.Get(rbtree.Uint64Key(42))
	assert.False(t, found)
}

func TestRangeVisitsInAscendingOrder(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bin")

	idx, err := kvindex.Open(path, 8)
	require.NoError(t, err)

	defer idx.Close()

	for _, k := range []uint64{30, 10, 20, 5, 25} {
		_, err := idx.Put(rbtree.Uint64Key(k), uint32(k))
		require.NoError(t, err)
	}

	var links []uint32
	idx.Range(func(key []byte, link uint32) bool {
		links = append(links, link)
		return true
	})

	assert.Equal(t, []uint32{5, 10, 20, 25, 30}, links)
}

func TestReopenedIndexKeepsEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bin")

	idx, err := kvindex.Open(path, 8)
	require.NoError(t, err)

	_, err = idx.Put(rbtree.Uint64Key(1), 1)
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	reopened, err := kvindex.Open(path, 8)
	require.NoError(t, err)

	defer reopened.Close()

	link, found := reopened.Get(rbtree.Uint64Key(1))
	require.True(t, found)
	assert.EqualValues(t, 1, link)
}
