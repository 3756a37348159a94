package harmonics

// Vocabulary resolves between enumeration names and the numeric codes stored
// in records. Code 0 is the "Unknown" entry for every enumeration except
// constituents, where every code is a real constituent.
//
// Find lookups return -1 when the name is unknown. The translator maps
// misses on non-required enumerations to code 0 rather than failing.
type Vocabulary interface {
	Country(code int) string
	FindCountry(name string) int

	TZFile(code int) string
	FindTZFile(name string) int

	LevelUnits(code int) string
	FindLevelUnits(name string) int

	DirUnits(code int) string
	FindDirUnits(name string) int

	Datum(code int) string
	FindDatum(name string) int

	Constituent(code int) string
	FindConstituent(name string) int

	// Entry counts, used for sparse array sizing and schema enumeration.
	Countries() int
	TZFiles() int
	LevelUnitTypes() int
	DirUnitTypes() int
	DatumTypes() int
	Constituents() int
}
