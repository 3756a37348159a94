package station

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Directory is the shared, mutate-in-place ordered list of station refs.
//
// Only the translator's insert path may Append and Sort; read paths must
// tolerate indices shifting between requests. The directory performs no
// locking of its own - the host serializes access per store.
type Directory struct {
	refs     []*Ref
	byHandle map[uuid.UUID]*Ref
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{byHandle: make(map[uuid.UUID]*Ref)}
}

// Append adds a ref at the end of the directory and assigns its index.
// Callers that need the canonical ordering must Sort afterwards.
func (d *Directory) Append(ref *Ref) {
	ref.Index = len(d.refs)
	d.refs = append(d.refs, ref)
	d.byHandle[ref.Handle] = ref
}

// Sort orders the directory by its collation key and recomputes every
// entry's Index. Ties break on coordinates and record number so the order
// is total and deterministic.
func (d *Directory) Sort() {
	sort.SliceStable(d.refs, func(i, j int) bool {
		a, b := d.refs[i], d.refs[j]
		ka, kb := sortKey(a.Name), sortKey(b.Name)
		if ka != kb {
			return ka < kb
		}
		if a.Latitude != b.Latitude {
			return a.Latitude < b.Latitude
		}
		if a.Longitude != b.Longitude {
			return a.Longitude < b.Longitude
		}
		return a.RecordNumber < b.RecordNumber
	})
	for i, ref := range d.refs {
		ref.Index = i
	}
}

// sortKey normalizes a station name for ordering. NFC normalization keeps
// composed and decomposed spellings of the same name adjacent.
func sortKey(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

// At returns the ref at index i, or false when i is out of range.
func (d *Directory) At(i int) (*Ref, bool) {
	if i < 0 || i >= len(d.refs) {
		return nil, false
	}
	return d.refs[i], true
}

// ByHandle returns the ref with the given stable handle.
func (d *Directory) ByHandle(h uuid.UUID) (*Ref, bool) {
	ref, ok := d.byHandle[h]
	return ref, ok
}

// Len returns the number of stations in the directory.
func (d *Directory) Len() int {
	return len(d.refs)
}

// All returns a copy of the directory's entries in index order.
func (d *Directory) All() []*Ref {
	out := make([]*Ref, len(d.refs))
	copy(out, d.refs)
	return out
}
