package harmonics

// Station type values accepted in the document "type" field.
const (
	StationTypeTide    = "tide"
	StationTypeCurrent = "current"
)

// Position is a station location in signed decimal degrees.
type Position struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Summary is the station reference summary rendered by the list and nearest
// queries and embedded at the top level of a full Document.
type Summary struct {
	Index            int      `json:"index"`
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ReferenceStation bool     `json:"referenceStation"`
	Timezone         string   `json:"timezone"`
	Type             string   `json:"type"`
	Position         Position `json:"position"`
}

// Constituent is one named harmonic constituent.
type Constituent struct {
	Name  string  `json:"name"`
	Amp   float64 `json:"amp"`
	Epoch float64 `json:"epoch"`
}

// HarmonicsSection carries the data required for reference stations.
type HarmonicsSection struct {
	Confidence   int           `json:"confidence"`
	Datum        string        `json:"datum"`
	DatumOffset  float64       `json:"datumOffset"`
	ZoneOffset   int           `json:"zoneOffset"`
	Constituents []Constituent `json:"constituents"`
}

// OffsetsSection carries the correctors required for subordinate stations.
// FloodBegins/EbbBegins apply to current stations only and are absent when
// unknown.
type OffsetsSection struct {
	MinTimeAdd         int     `json:"minTimeAdd"`
	MinLevelAdd        float64 `json:"minLevelAdd"`
	MinLevelMultiply   float64 `json:"minLevelMultiply"`
	MaxTimeAdd         int     `json:"maxTimeAdd"`
	MaxLevelAdd        float64 `json:"maxLevelAdd"`
	MaxLevelMultiply   float64 `json:"maxLevelMultiply"`
	ReferenceStationID string  `json:"referenceStationId"`
	FloodBegins        *int    `json:"floodBegins,omitempty"`
	EbbBegins          *int    `json:"ebbBegins,omitempty"`
}

// FlowSection exists only for current stations. Directions are absent when
// unknown.
type FlowSection struct {
	Units          string `json:"units"`
	EbbDirection   *int   `json:"ebbDirection,omitempty"`
	FloodDirection *int   `json:"floodDirection,omitempty"`
}

// SourceSection identifies where the station definition came from.
// Context and StationID compose the durable external id and are mandatory
// on every write.
type SourceSection struct {
	Context   string `json:"context"`
	Name      string `json:"name"`
	StationID string `json:"stationId"`
}

// Document is the full harmonics document consumed and produced by the
// Translator. Field names are the external contract.
type Document struct {
	Index            *int     `json:"index,omitempty"`
	ID               string   `json:"id,omitempty"`
	Name             string   `json:"name"`
	ReferenceStation bool     `json:"referenceStation"`
	Timezone         string   `json:"timezone"`
	Type             string   `json:"type"`
	Position         Position `json:"position"`

	Country    string `json:"country,omitempty"`
	LevelUnits string `json:"levelUnits,omitempty"`
	Comments   string `json:"comments,omitempty"`
	Notes      string `json:"notes,omitempty"`

	Harmonics *HarmonicsSection `json:"harmonics,omitempty"`
	Offsets   *OffsetsSection   `json:"offsets,omitempty"`
	Flow      *FlowSection      `json:"flow,omitempty"`
	Source    *SourceSection    `json:"source,omitempty"`
}

// RequiredSections returns the top-level fields a complete document must
// carry for the given station kind, in schema order. The same table drives
// write validation and the schema descriptor's conditional required sets.
func RequiredSections(stationType string, referenceStation bool) []string {
	req := []string{"name", "type", "position", "timezone", "levelUnits"}
	if referenceStation {
		req = append(req, "harmonics")
	} else {
		req = append(req, "offsets")
	}
	if stationType == StationTypeCurrent {
		req = append(req, "flow")
	}
	return append(req, "source")
}
