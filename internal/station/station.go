// Package station owns the in-memory station directory and the identity
// cache mapping durable external ids to transient directory indices.
//
// A station's position in the directory (its index) is invalidated by every
// insert: the directory is resorted and indices recomputed. The durable
// identities are the external id "<context>:<stationId>", the pair
// (store path, record number), and the opaque per-entry handle.
package station

import "github.com/google/uuid"

// Ref is the lightweight per-station entry in the directory.
type Ref struct {
	// Handle is an opaque identity that stays stable across resorts.
	Handle uuid.UUID

	// Index is the entry's position in the directory. It is recomputed by
	// every Sort and must not be persisted.
	Index int

	Name               string
	Latitude           float64
	Longitude          float64
	Timezone           string
	IsCurrent          bool
	IsReferenceStation bool

	// RecordNumber locates the station's record inside StorePath.
	RecordNumber int
	StorePath    string
}

// NewHandle mints a fresh directory handle.
func NewHandle() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// TypeFilter selects stations by kind for the list and nearest queries.
type TypeFilter int

const (
	FilterAll TypeFilter = iota
	FilterTide
	FilterCurrent
)

// ParseTypeFilter maps the external filter strings "tide" and "current";
// anything else selects all stations.
func ParseTypeFilter(s string) TypeFilter {
	switch s {
	case "tide":
		return FilterTide
	case "current":
		return FilterCurrent
	default:
		return FilterAll
	}
}

// Qualifies reports whether ref passes the filter.
func (f TypeFilter) Qualifies(ref *Ref) bool {
	switch f {
	case FilterTide:
		return !ref.IsCurrent
	case FilterCurrent:
		return ref.IsCurrent
	default:
		return true
	}
}
