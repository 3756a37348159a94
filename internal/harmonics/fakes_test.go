package harmonics

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/marinerlabs/tidedb/internal/station"
)

// testVocab is a small fixed vocabulary for translator tests.
type testVocab struct{}

var (
	testCountries    = []string{"Unknown", "USA", "Canada"}
	testTZFiles      = []string{"Unknown", ":UTC", ":America/New_York"}
	testLevelUnits   = []string{"Unknown", "feet", "meters", "knots", "knots^2"}
	testDirUnits     = []string{"Unknown", "degrees true"}
	testDatums       = []string{"Unknown", "Mean Lower Low Water"}
	testConstituents = []string{"M2", "S2", "N2", "K1", "O1"}
)

func nameOf(list []string, code int) string {
	if code < 0 || code >= len(list) {
		return "Unknown"
	}
	return list[code]
}

func codeOf(list []string, name string) int {
	for i, n := range list {
		if n == name {
			return i
		}
	}
	return -1
}

func (testVocab) Country(code int) string      { return nameOf(testCountries, code) }
func (testVocab) FindCountry(name string) int  { return codeOf(testCountries, name) }
func (testVocab) TZFile(code int) string       { return nameOf(testTZFiles, code) }
func (testVocab) FindTZFile(name string) int   { return codeOf(testTZFiles, name) }
func (testVocab) LevelUnits(code int) string   { return nameOf(testLevelUnits, code) }
func (testVocab) FindLevelUnits(n string) int  { return codeOf(testLevelUnits, n) }
func (testVocab) DirUnits(code int) string     { return nameOf(testDirUnits, code) }
func (testVocab) FindDirUnits(n string) int    { return codeOf(testDirUnits, n) }
func (testVocab) Datum(code int) string        { return nameOf(testDatums, code) }
func (testVocab) FindDatum(name string) int    { return codeOf(testDatums, name) }
func (testVocab) Constituent(code int) string  { return nameOf(testConstituents, code) }
func (testVocab) FindConstituent(n string) int { return codeOf(testConstituents, n) }
func (testVocab) Countries() int               { return len(testCountries) }
func (testVocab) TZFiles() int                 { return len(testTZFiles) }
func (testVocab) LevelUnitTypes() int          { return len(testLevelUnits) }
func (testVocab) DirUnitTypes() int            { return len(testDirUnits) }
func (testVocab) DatumTypes() int              { return len(testDatums) }
func (testVocab) Constituents() int            { return len(testConstituents) }

// memStore is an in-memory Store. Records are copied on every read and
// write so tests observe persistence, not shared pointers.
type memStore struct {
	path     string
	records  []*Record
	failWith error // forced write failure when set
}

func newMemStore(path string) *memStore {
	return &memStore{path: path}
}

func (s *memStore) Path() string { return s.path }

func (s *memStore) Header() (Header, error) {
	return Header{
		MajorRev:        2,
		MinorRev:        2,
		StartYear:       1970,
		NumberOfYears:   131,
		NumberOfRecords: len(s.records),
	}, nil
}

func (s *memStore) ReadRecord(recordNumber int) (*Record, error) {
	if recordNumber < 0 || recordNumber >= len(s.records) {
		return nil, fmt.Errorf("record %d: %w", recordNumber, ErrNoRecord)
	}
	return copyRecord(s.records[recordNumber]), nil
}

func (s *memStore) AddRecord(rec *Record) (int, error) {
	if s.failWith != nil {
		return -1, s.failWith
	}
	s.records = append(s.records, copyRecord(rec))
	return len(s.records) - 1, nil
}

func (s *memStore) UpdateRecord(recordNumber int, rec *Record) error {
	if s.failWith != nil {
		return s.failWith
	}
	if recordNumber < 0 || recordNumber >= len(s.records) {
		return fmt.Errorf("record %d: %w", recordNumber, ErrNoRecord)
	}
	s.records[recordNumber] = copyRecord(rec)
	return nil
}

func copyRecord(rec *Record) *Record {
	cp := *rec
	cp.Amplitudes = append([]float64(nil), rec.Amplitudes...)
	cp.Epochs = append([]float64(nil), rec.Epochs...)
	return &cp
}

// memSet serves memStores by path.
type memSet struct {
	stores      map[string]*memStore
	defaultPath string
}

func newMemSet(stores ...*memStore) *memSet {
	set := &memSet{stores: make(map[string]*memStore), defaultPath: stores[0].path}
	for _, st := range stores {
		set.stores[st.path] = st
	}
	return set
}

func (s *memSet) Store(path string) (Store, error) {
	st, ok := s.stores[path]
	if !ok {
		return nil, fmt.Errorf("no store at %s", path)
	}
	return st, nil
}

func (s *memSet) DefaultPath() string { return s.defaultPath }

func (s *memSet) readExternalID(path string, recordNumber int) (string, error) {
	st, ok := s.stores[path]
	if !ok {
		return "", fmt.Errorf("no store at %s", path)
	}
	rec, err := st.ReadRecord(recordNumber)
	if err != nil {
		return "", err
	}
	return rec.ExternalID(), nil
}

// testEnv bundles a translator over one in-memory store, pre-seeded with
// records, and the directory/cache layers above it.
type testEnv struct {
	store *memStore
	set   *memSet
	dir   *station.Directory
	cache *station.Cache
	tr    *Translator
}

// newTestEnv seeds the store with records and mirrors them into the
// directory the same way a store scan would.
func newTestEnv(seed ...*Record) *testEnv {
	st := newMemStore("test.db")
	set := newMemSet(st)
	dir := station.NewDirectory()

	for i, rec := range seed {
		st.records = append(st.records, copyRecord(rec))
		dir.Append(&station.Ref{
			Handle:             station.NewHandle(),
			Name:               rec.Name,
			Latitude:           rec.Latitude,
			Longitude:          rec.Longitude,
			Timezone:           testVocab{}.TZFile(rec.TZFile),
			IsCurrent:          rec.LevelUnits == 3 || rec.LevelUnits == 4,
			IsReferenceStation: rec.Type == ReferenceStation,
			RecordNumber:       i,
			StorePath:          st.path,
		})
	}
	dir.Sort()

	cache := station.NewCache(dir, set.readExternalID, slog.New(slog.NewTextHandler(io.Discard, nil)))
	tr := NewTranslator(dir, cache, set, testVocab{}, nil)
	return &testEnv{store: st, set: set, dir: dir, cache: cache, tr: tr}
}

// seedReference builds a persisted reference tide station record.
func seedReference(name, context, stationID string) *Record {
	rec := NewRecord(len(testConstituents))
	rec.Name = name
	rec.Latitude = 41.5
	rec.Longitude = -71.3
	rec.TZFile = 2
	rec.Type = ReferenceStation
	rec.Country = 1
	rec.LevelUnits = 1
	rec.Confidence = 10
	rec.Datum = 1
	rec.DatumOffset = 1.2
	rec.StationIDContext = context
	rec.StationID = stationID
	rec.Source = "harmonics file"
	rec.EbbDirection = NullDirection
	rec.FloodDirection = NullDirection
	rec.FloodBegins = NullSlackOffset
	rec.EbbBegins = NullSlackOffset
	rec.Amplitudes[0] = 1.23
	rec.Epochs[0] = 15.5
	rec.Amplitudes[3] = 0.4
	rec.Epochs[3] = 201.0
	return rec
}
