package station

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapReader serves external ids from a map keyed by record number, counting
// how often it is consulted.
type mapReader struct {
	ids   map[int]string
	reads atomic.Int64
}

func (r *mapReader) read(storePath string, recordNumber int) (string, error) {
	r.reads.Add(1)
	id, ok := r.ids[recordNumber]
	if !ok {
		return "", fmt.Errorf("record %d unreadable", recordNumber)
	}
	return id, nil
}

func newCacheFixture(ids map[int]string) (*Directory, *mapReader, *Cache) {
	dir := NewDirectory()
	for rn := 0; rn < len(ids); rn++ {
		dir.Append(newRef(fmt.Sprintf("Station %02d", rn), rn))
	}
	dir.Sort()
	reader := &mapReader{ids: ids}
	cache := NewCache(dir, reader.read, nil)
	return dir, reader, cache
}

func TestCache_ResolveAndReverse(t *testing.T) {
	_, _, cache := newCacheFixture(map[int]string{
		0: "NOAA:100",
		1: "NOAA:200",
	})

	index, err := cache.Resolve("NOAA:200")
	require.NoError(t, err)
	assert.Equal(t, 1, index)

	assert.Equal(t, "NOAA:200", cache.Reverse(1))
	assert.Equal(t, "NOAA:100", cache.Reverse(0))
	assert.Empty(t, cache.Reverse(99))
}

func TestCache_ResolveUnknownID(t *testing.T) {
	_, _, cache := newCacheFixture(map[int]string{0: "NOAA:100"})

	_, err := cache.Resolve("NOAA:999")
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "NOAA:999", nfe.Key)
}

func TestCache_BareIntegerResolvesAsIndex(t *testing.T) {
	_, reader, cache := newCacheFixture(map[int]string{0: "NOAA:100", 1: "NOAA:200"})

	index, err := cache.Resolve("1")
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Zero(t, reader.reads.Load(), "index resolution must not touch the store")

	_, err = cache.Resolve("17")
	assert.Error(t, err)
	_, err = cache.Resolve("not-a-number")
	assert.Error(t, err)
}

func TestCache_BuildIsLazyAndCached(t *testing.T) {
	_, reader, cache := newCacheFixture(map[int]string{0: "NOAA:100", 1: "NOAA:200"})

	assert.Zero(t, reader.reads.Load())

	_, err := cache.Resolve("NOAA:100")
	require.NoError(t, err)
	firstBuild := reader.reads.Load()
	assert.Equal(t, int64(2), firstBuild, "rebuild scans every station once")

	// Further resolutions reuse the built maps.
	_, _ = cache.Resolve("NOAA:200")
	cache.Reverse(0)
	assert.Equal(t, firstBuild, reader.reads.Load())
}

func TestCache_InvalidateForcesRebuild(t *testing.T) {
	dir, reader, cache := newCacheFixture(map[int]string{0: "NOAA:100"})

	_, err := cache.Resolve("NOAA:100")
	require.NoError(t, err)

	// A new station appears; the stale cache cannot see it yet.
	dir.Append(newRef("Zebra Point", 1))
	dir.Sort()
	reader.ids[1] = "NOAA:200"
	_, err = cache.Resolve("NOAA:200")
	assert.Error(t, err)

	cache.Invalidate()
	index, err := cache.Resolve("NOAA:200")
	require.NoError(t, err)
	ref, ok := dir.At(index)
	require.True(t, ok)
	assert.Equal(t, "Zebra Point", ref.Name)
}

func TestCache_SkipsUnreadableAndEmptyIDs(t *testing.T) {
	dir := NewDirectory()
	dir.Append(newRef("Alpha", 0))
	dir.Append(newRef("Beta", 1))
	dir.Append(newRef("Gamma", 2))
	dir.Sort()

	read := func(storePath string, recordNumber int) (string, error) {
		switch recordNumber {
		case 0:
			return "NOAA:100", nil
		case 1:
			return "", nil // no source identity
		default:
			return "", errors.New("read failed")
		}
	}
	cache := NewCache(dir, read, nil)

	index, err := cache.Resolve("NOAA:100")
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	// The unreadable and identity-less stations resolve by index only.
	assert.Empty(t, cache.Reverse(1))
	assert.Empty(t, cache.Reverse(2))
}

func TestCache_ResolveRecord(t *testing.T) {
	dir, _, cache := newCacheFixture(map[int]string{0: "NOAA:100", 1: "NOAA:200"})

	ref, ok := dir.At(0)
	require.True(t, ok)

	index, err := cache.ResolveRecord(ref.StorePath, ref.RecordNumber)
	require.NoError(t, err)
	assert.Equal(t, ref.Index, index)

	_, err = cache.ResolveRecord("other.db", 0)
	assert.Error(t, err)
	_, err = cache.ResolveRecord(ref.StorePath, 42)
	assert.Error(t, err)
}
