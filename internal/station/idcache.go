package station

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// IDReader reads the external id stored in one record. The cache uses it
// during rebuilds; it is the only store access the package needs.
type IDReader func(storePath string, recordNumber int) (string, error)

// NotFoundError reports an unknown external id or out-of-range index.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("station %q not found", e.Key)
}

// Cache is the lazy bidirectional index between external ids and directory
// indices.
//
// The maps are built on first resolution by scanning every station in the
// directory once and reading its record. Any operation that changes the set
// of external ids (an insert) must call Invalidate before the next
// resolution; the rebuild is not safe to race against a concurrent insert.
type Cache struct {
	dir  *Directory
	read IDReader
	log  *slog.Logger

	mu      sync.RWMutex
	byID    map[string]int
	byIndex map[int]string
}

// NewCache returns an unbuilt cache over dir. A nil logger disables rebuild
// logging.
func NewCache(dir *Directory, read IDReader, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{dir: dir, read: read, log: log}
}

// Resolve maps an external id to the station's current directory index.
// Strings without a colon are parsed as bare indices, matching the ids the
// read paths accept. Unknown ids yield a NotFoundError.
func (c *Cache) Resolve(externalID string) (int, error) {
	if !strings.Contains(externalID, ":") {
		index, err := strconv.Atoi(externalID)
		if err != nil {
			return -1, &NotFoundError{Key: externalID}
		}
		if _, ok := c.dir.At(index); !ok {
			return -1, &NotFoundError{Key: externalID}
		}
		return index, nil
	}

	byID, _ := c.maps()
	index, ok := byID[externalID]
	if !ok {
		return -1, &NotFoundError{Key: externalID}
	}
	return index, nil
}

// ResolveRecord maps a (store path, record number) pair to the station's
// current directory index.
func (c *Cache) ResolveRecord(storePath string, recordNumber int) (int, error) {
	for _, ref := range c.dir.All() {
		if ref.StorePath == storePath && ref.RecordNumber == recordNumber {
			return ref.Index, nil
		}
	}
	return -1, &NotFoundError{Key: fmt.Sprintf("%s#%d", storePath, recordNumber)}
}

// Reverse maps a directory index to its external id. Returns "" for unknown
// indices or stations whose record carries no source identity.
func (c *Cache) Reverse(index int) string {
	_, byIndex := c.maps()
	return byIndex[index]
}

// Invalidate discards the cache. The next resolution rebuilds it from the
// directory and store. Safe to call concurrently with reads.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.byID = nil
	c.byIndex = nil
	c.mu.Unlock()
}

// maps returns the built index maps, rebuilding them first if needed.
func (c *Cache) maps() (map[string]int, map[int]string) {
	c.mu.RLock()
	if c.byID != nil {
		byID, byIndex := c.byID, c.byIndex
		c.mu.RUnlock()
		return byID, byIndex
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.byID == nil {
		c.rebuild()
	}
	return c.byID, c.byIndex
}

// rebuild scans the whole directory once, reading each station's record to
// compose its external id. Records that cannot be read are skipped; they
// simply stay unresolvable until the next rebuild.
func (c *Cache) rebuild() {
	c.log.Info("building station identity map", "stations", c.dir.Len())

	byID := make(map[string]int, c.dir.Len())
	byIndex := make(map[int]string, c.dir.Len())
	for _, ref := range c.dir.All() {
		id, err := c.read(ref.StorePath, ref.RecordNumber)
		if err != nil {
			c.log.Warn("identity map: skipping unreadable record",
				"store", ref.StorePath,
				"record", ref.RecordNumber,
				"error", err,
			)
			continue
		}
		if id == "" {
			continue
		}
		byID[id] = ref.Index
		byIndex[ref.Index] = id
	}

	c.byID = byID
	c.byIndex = byIndex
}
