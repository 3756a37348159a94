// Package nearest implements the bounded nearest-station candidate set used
// by proximity queries.
package nearest

import (
	"github.com/marinerlabs/tidedb/internal/geo"
	"github.com/marinerlabs/tidedb/internal/station"
)

// Entry pairs an admitted station with its distance from the query point.
type Entry struct {
	Distance float64 // km
	Ref      *station.Ref
}

// Finder holds the K closest stations seen so far, ascending by distance.
//
// Admission is the bounded insertion-sort policy: each candidate is placed
// by an ascending scan, later entries shift down by one, and once the set is
// full a candidate farther than the current farthest member is discarded
// without any payload movement. O(K) worst case per candidate.
type Finder struct {
	origin   geo.Point
	capacity int
	entries  []Entry
}

// New returns an empty finder for the given query point and capacity.
func New(origin geo.Point, capacity int) *Finder {
	if capacity < 0 {
		capacity = 0
	}
	return &Finder{
		origin:   origin,
		capacity: capacity,
		entries:  make([]Entry, 0, capacity),
	}
}

// Check computes the candidate's distance and admits it if the set has
// spare capacity or the candidate is closer than the current farthest
// member.
func (f *Finder) Check(ref *station.Ref) {
	dist := geo.Distance(f.origin, geo.Point{Lat: ref.Latitude, Lng: ref.Longitude})

	pos := 0
	for pos < len(f.entries) && dist >= f.entries[pos].Distance {
		pos++
	}
	if pos == len(f.entries) && len(f.entries) >= f.capacity {
		return
	}

	if len(f.entries) < f.capacity {
		f.entries = append(f.entries, Entry{})
	}
	copy(f.entries[pos+1:], f.entries[pos:])
	f.entries[pos] = Entry{Distance: dist, Ref: ref}
}

// Count returns the number of admitted stations.
func (f *Finder) Count() int {
	return len(f.entries)
}

// At returns the i-th closest admitted station, or false when i is out of
// range.
func (f *Finder) At(i int) (Entry, bool) {
	if i < 0 || i >= len(f.entries) {
		return Entry{}, false
	}
	return f.entries[i], true
}

// Entries returns a copy of the admitted stations in ascending distance
// order.
func (f *Finder) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}
