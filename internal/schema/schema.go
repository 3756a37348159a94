// Package schema generates the declarative JSON Schema describing the
// station documents the translator accepts. The enumerations come from the
// live vocabulary and the per-kind required sets from the translator's own
// requirement table, so the descriptor cannot drift from the validation
// rules.
package schema

import (
	"github.com/marinerlabs/tidedb/internal/harmonics"
)

// Help text shown to schema consumers. Wording follows the upstream tide
// editor's field documentation.
const (
	datumText = "This is the description of which tidal datum is being used. " +
		"In the U.S., it is usually 'Mean Lower Low Water'. " +
		"For currents this field is irrelevant."
	datumOffsetText = "For tides, this is the elevation of Mean Sea " +
		"Level (MSL) relative to the specified datum in Level Units. For " +
		"currents it is an analogous constant used to calibrate the velocity of " +
		"the predicted currents against zero."
	confidenceText = "Confidence is a meaningless indicator of data " +
		"quality ranging between 0 and 15 and normally initialized to 10."
	zoneOffsetText = "This is the standard time to which epochs are adjusted, " +
		"a.k.a. the meridian, in hours and minutes east of UTC. The format is " +
		"+/-HHMM (i.e. hours * 100 + min) with positive values being east of " +
		"Greenwich and negative values west. Do not use daylight savings time."
)

// Build returns the draft-07 JSON Schema for station documents.
func Build(vocab harmonics.Vocabulary) map[string]any {
	s := object("Values needed to define a tidal or current station")
	s["$schema"] = "http://json-schema.org/draft-07/schema#"
	s["title"] = "Harmonic Station Definition"

	addProperty(s, "name", "string", "Tide station name")
	addProperty(s, "index", "number",
		"The station index number. Leave blank or zero for new entries. "+
			"Use only recent values returned by the server for updates")
	addProperty(s, "comments", "string", "Any special comments about this station. Leave blank if none.")
	addProperty(s, "notes", "string", "Any special notes about this station. Leave blank if none.")
	addProperty(s, "referenceStation", "boolean", "TRUE if this is a reference station, false if a subordinate station.")

	addEnum(s, "type", []string{harmonics.StationTypeTide, harmonics.StationTypeCurrent},
		"What type of information does this station supply?")
	addEnum(s, "country", enumNames(vocab.Countries(), vocab.Country), "")
	addEnum(s, "timezone", enumNames(vocab.TZFiles(), vocab.TZFile), "")
	addEnum(s, "levelUnits", enumNames(vocab.LevelUnitTypes(), vocab.LevelUnits), "")

	flow := addObject(s, "flow", "Data for current stations only.")
	addBoundedNumber(flow, "ebbDirection", "integer",
		"This is the direction of the maximum ebb current. Enter a number between 0 and 359, or leave absent if unknown.", 0, 359)
	addBoundedNumber(flow, "floodDirection", "integer",
		"This is the direction of the maximum flood current. Enter a number between 0 and 359, or leave absent if unknown.", 0, 359)
	addEnum(flow, "units", enumNames(vocab.DirUnitTypes(), vocab.DirUnits), "")

	position := addObject(s, "position", "Location of station in 'Signed degrees' format")
	addBoundedNumber(position, "lat", "number",
		"Geographic latitude. Use negative numbers for South, positive for North", -90, 90)
	addBoundedNumber(position, "long", "number",
		"Geographic longitude. Use negative numbers for West, positive for East", -180, 180)
	position["required"] = []string{"lat", "long"}

	source := addObject(s, "source", "Source of the data for this station definition")
	addProperty(source, "context", "string", "Name of government agency, company, etc. that supplied the data")
	addProperty(source, "name", "string", "Name of how the data was obtained from the context")
	addProperty(source, "stationId", "string", "How does this data source identify this particular station")
	source["required"] = []string{"context", "stationId"}

	harm := addObject(s, "harmonics", "Data required for reference tide and current stations")
	addProperty(harm, "confidence", "integer", confidenceText)
	addEnum(harm, "datum", enumNames(vocab.DatumTypes(), vocab.Datum), datumText)
	addProperty(harm, "datumOffset", "number", datumOffsetText)
	addProperty(harm, "zoneOffset", "integer", zoneOffsetText)
	constituents := addProperty(harm, "constituents", "array", "Harmonic constants that define this reference station")
	item := object("")
	addEnum(item, "name", constituentNames(vocab), "The harmonic constant being defined.")
	addProperty(item, "amp", "number", "The amplitude in units defined in levelUnits")
	addProperty(item, "epoch", "number", "The epoch, sometimes defined as 'phase'. Should be relative to GMT unless zoneOffset is non-zero")
	item["required"] = []string{"name", "amp", "epoch"}
	constituents["items"] = item

	offsets := addObject(s, "offsets", "Data required for subordinate tide and current stations")
	addProperty(offsets, "ebbBegins", "integer",
		"For current stations only - the time corrector for the beginning of ebb tide, a.k.a. 'minimum before ebb'. Use offset hours * 100 + minutes. Leave absent if unknown.")
	addProperty(offsets, "floodBegins", "integer",
		"For current stations only - the time corrector for the beginning of flood tide, a.k.a. 'minimum before flood'. Use offset hours * 100 + minutes. Leave absent if unknown.")
	addProperty(offsets, "minLevelAdd", "number", "Offset to add to the low tide value from the reference station")
	addProperty(offsets, "maxLevelAdd", "number", "Offset to add to the high tide value from the reference station")
	addProperty(offsets, "minTimeAdd", "integer", "Offset to add to the time of low tide at the reference station (HHMM)")
	addProperty(offsets, "maxTimeAdd", "integer", "Offset to add to the time of high tide at the reference station (HHMM)")
	addProperty(offsets, "minLevelMultiply", "number", "Multiplier to scale the low tide level from the reference station")
	addProperty(offsets, "maxLevelMultiply", "number", "Multiplier to scale the high tide level from the reference station")
	addProperty(offsets, "referenceStationId", "string", "The value of the 'id' field for the reference station this station is subordinate to.")

	// Per-kind required sets, one if/then combo per (type, referenceStation)
	// pair, driven by the same table the translator validates against.
	var combos []any
	for _, stationType := range []string{harmonics.StationTypeTide, harmonics.StationTypeCurrent} {
		for _, isReference := range []bool{true, false} {
			combos = append(combos, map[string]any{
				"if": map[string]any{
					"properties": map[string]any{
						"type":             map[string]any{"const": stationType},
						"referenceStation": map[string]any{"const": isReference},
					},
				},
				"then": map[string]any{
					"required": harmonics.RequiredSections(stationType, isReference),
				},
			})
		}
	}
	s["allOf"] = combos
	s["additionalProperties"] = false

	return s
}

// object returns a bare JSON Schema object node.
func object(description string) map[string]any {
	node := map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	}
	if description != "" {
		node["description"] = description
	}
	return node
}

func addProperty(parent map[string]any, name, typ, description string) map[string]any {
	prop := map[string]any{"type": typ}
	if description != "" {
		prop["description"] = description
	}
	parent["properties"].(map[string]any)[name] = prop
	return prop
}

func addBoundedNumber(parent map[string]any, name, typ, description string, min, max float64) map[string]any {
	prop := addProperty(parent, name, typ, description)
	prop["minimum"] = min
	prop["maximum"] = max
	return prop
}

func addEnum(parent map[string]any, name string, values []string, description string) map[string]any {
	prop := addProperty(parent, name, "string", description)
	if description == "" {
		delete(prop, "description")
	}
	prop["enum"] = values
	return prop
}

func addObject(parent map[string]any, name, description string) map[string]any {
	node := object(description)
	parent["properties"].(map[string]any)[name] = node
	return node
}

// enumNames lists a vocabulary's names starting at code 1, skipping the
// "Unknown" entry clients should not send.
func enumNames(count int, name func(int) string) []string {
	names := make([]string, 0, count)
	for code := 1; code < count; code++ {
		names = append(names, name(code))
	}
	return names
}

// constituentNames lists every constituent; code 0 is a real constituent.
func constituentNames(vocab harmonics.Vocabulary) []string {
	names := make([]string, 0, vocab.Constituents())
	for code := 0; code < vocab.Constituents(); code++ {
		names = append(names, vocab.Constituent(code))
	}
	return names
}
