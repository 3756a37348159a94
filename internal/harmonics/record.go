package harmonics

// Sentinel values used inside store records. Documents represent these as
// absent optional fields; the conversion happens only at the store edge.
const (
	// NullDirection marks an unknown or not-applicable ebb/flood direction.
	NullDirection = 361

	// NullSlackOffset marks an unknown flood-begins/ebb-begins corrector.
	NullSlackOffset = 2560
)

// RecordType distinguishes the two station kinds a record can describe.
type RecordType int

const (
	// ReferenceStation records carry their own harmonic constituent data.
	ReferenceStation RecordType = 1

	// SubordinateStation records carry offsets applied to a reference
	// station's prediction.
	SubordinateStation RecordType = 2
)

// Record is the fixed-schema harmonics store record for one station.
// It is mutated only through the Translator.
type Record struct {
	// Header fields.
	Name      string
	Latitude  float64
	Longitude float64
	TZFile    int
	Type      RecordType

	// ReferenceRecord is the record number (within the same store) of the
	// reference station a subordinate applies its offsets to. -1 for
	// reference stations.
	ReferenceRecord int

	Country     int
	LevelUnits  int
	Confidence  int // 0-15
	Datum       int
	DatumOffset float64
	ZoneOffset  int // signed HHMM integer

	// Sparse constituent arrays indexed by constituent code. Length equals
	// Vocabulary.Constituents(). An (amplitude, epoch) pair of (0, 0) means
	// the constituent is not present.
	Amplitudes []float64
	Epochs     []float64

	// Free-text provenance and annotations.
	Source           string
	StationIDContext string
	StationID        string
	Comments         string
	Notes            string

	// Current-flow fields. NullDirection for tide stations.
	DirectionUnits int
	EbbDirection   int // stored as min_direction
	FloodDirection int // stored as max_direction

	// Subordinate-offset fields. Time correctors are signed HHMM integers;
	// flood/ebb-begins use NullSlackOffset when unknown.
	MinTimeAdd       int
	MinLevelAdd      float64
	MinLevelMultiply float64
	MaxTimeAdd       int
	MaxLevelAdd      float64
	MaxLevelMultiply float64
	FloodBegins      int
	EbbBegins        int
}

// NewRecord returns a zeroed record with constituent arrays sized for the
// given vocabulary.
func NewRecord(constituents int) *Record {
	return &Record{
		ReferenceRecord: -1,
		Amplitudes:      make([]float64, constituents),
		Epochs:          make([]float64, constituents),
	}
}

// ExternalID composes the durable station identity from the record's source
// fields. Returns "" when either part is missing.
func (r *Record) ExternalID() string {
	if r.StationIDContext == "" || r.StationID == "" {
		return ""
	}
	return r.StationIDContext + ":" + r.StationID
}
