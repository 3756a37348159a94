package tcdb

import (
	"fmt"

	"github.com/marinerlabs/tidedb/internal/harmonics"
	"github.com/marinerlabs/tidedb/internal/station"
)

// LoadDirectory builds the in-memory station directory by scanning every
// record in every store of the set, then sorting into canonical order.
func LoadDirectory(set *Set) (*station.Directory, error) {
	dir := station.NewDirectory()
	for _, path := range set.Paths() {
		st, err := set.open(path)
		if err != nil {
			return nil, err
		}
		hdr, err := st.Header()
		if err != nil {
			return nil, err
		}
		for recordNumber := 0; recordNumber < hdr.NumberOfRecords; recordNumber++ {
			rec, err := st.ReadRecord(recordNumber)
			if err != nil {
				return nil, fmt.Errorf("load directory from %s: %w", path, err)
			}
			dir.Append(refFromRecord(st, recordNumber, rec))
		}
	}
	dir.Sort()
	return dir, nil
}

func refFromRecord(st *Store, recordNumber int, rec *harmonics.Record) *station.Ref {
	return &station.Ref{
		Handle:             station.NewHandle(),
		Name:               rec.Name,
		Latitude:           rec.Latitude,
		Longitude:          rec.Longitude,
		Timezone:           st.TZFile(rec.TZFile),
		IsCurrent:          isCurrentUnits(st, rec.LevelUnits),
		IsReferenceStation: rec.Type == harmonics.ReferenceStation,
		RecordNumber:       recordNumber,
		StorePath:          st.Path(),
	}
}

// isCurrentUnits reports whether the level units mark a current station.
// Velocity units (knots, knots squared) imply currents; height units imply
// tides.
func isCurrentUnits(st *Store, levelUnits int) bool {
	switch st.LevelUnits(levelUnits) {
	case "knots", "knots^2":
		return true
	default:
		return false
	}
}
