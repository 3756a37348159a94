package harmonics

import (
	"errors"
	"io"
	"log/slog"

	"github.com/marinerlabs/tidedb/internal/station"
)

// Translator maps between station documents and store records and owns the
// insert/update decision for the station directory.
//
// The write sequence (resolve, load, mutate, persist, resort, invalidate)
// must run as one unit of work with respect to other operations on the same
// store; callers serialize access externally.
type Translator struct {
	dir    *station.Directory
	cache  *station.Cache
	stores StoreSet
	vocab  Vocabulary
	log    *slog.Logger
}

// NewTranslator wires a translator over its collaborators. A nil logger
// disables logging.
func NewTranslator(dir *station.Directory, cache *station.Cache, stores StoreSet, vocab Vocabulary, log *slog.Logger) *Translator {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Translator{dir: dir, cache: cache, stores: stores, vocab: vocab, log: log}
}

// Summarize renders the station reference summary for one directory entry.
func (t *Translator) Summarize(ref *station.Ref) Summary {
	stationType := StationTypeTide
	if ref.IsCurrent {
		stationType = StationTypeCurrent
	}
	return Summary{
		Index:            ref.Index,
		ID:               t.cache.Reverse(ref.Index),
		Name:             ref.Name,
		ReferenceStation: ref.IsReferenceStation,
		Timezone:         ref.Timezone,
		Type:             stationType,
		Position:         Position{Lat: ref.Latitude, Long: ref.Longitude},
	}
}

// Document renders the full harmonics document for the station at the given
// directory index. The mapping is total: every populated record field is
// reflected, constituents with zero amplitude and zero epoch are omitted,
// and the flow/harmonics/offsets sections are emitted only for the matching
// station kind.
func (t *Translator) Document(index int) (*Document, error) {
	ref, ok := t.dir.At(index)
	if !ok {
		return nil, newError(CategoryNotFound, "invalid station index %d", index)
	}

	st, err := t.stores.Store(ref.StorePath)
	if err != nil {
		return nil, wrapStoreError(err, "could not open database %s", ref.StorePath)
	}

	rec, err := st.ReadRecord(ref.RecordNumber)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, newError(CategoryNotFound, "no record %d in %s", ref.RecordNumber, ref.StorePath)
		}
		return nil, wrapStoreError(err, "could not read tide record %d", ref.RecordNumber)
	}

	summary := t.Summarize(ref)
	doc := &Document{
		Index:            &summary.Index,
		ID:               summary.ID,
		Name:             summary.Name,
		ReferenceStation: summary.ReferenceStation,
		Timezone:         summary.Timezone,
		Type:             summary.Type,
		Position:         summary.Position,
		Country:          t.vocab.Country(rec.Country),
		LevelUnits:       t.vocab.LevelUnits(rec.LevelUnits),
		Comments:         rec.Comments,
		Notes:            rec.Notes,
		Source: &SourceSection{
			Context:   rec.StationIDContext,
			Name:      rec.Source,
			StationID: rec.StationID,
		},
	}

	if ref.IsCurrent {
		doc.Flow = &FlowSection{
			Units:          t.vocab.DirUnits(rec.DirectionUnits),
			EbbDirection:   fromDirection(rec.EbbDirection),
			FloodDirection: fromDirection(rec.FloodDirection),
		}
	}

	if ref.IsReferenceStation {
		doc.Harmonics = &HarmonicsSection{
			Confidence:   rec.Confidence,
			Datum:        t.vocab.Datum(rec.Datum),
			DatumOffset:  rec.DatumOffset,
			ZoneOffset:   rec.ZoneOffset,
			Constituents: t.sparseConstituents(rec),
		}
	} else {
		doc.Offsets = &OffsetsSection{
			MinTimeAdd:         rec.MinTimeAdd,
			MinLevelAdd:        rec.MinLevelAdd,
			MinLevelMultiply:   rec.MinLevelMultiply,
			MaxTimeAdd:         rec.MaxTimeAdd,
			MaxLevelAdd:        rec.MaxLevelAdd,
			MaxLevelMultiply:   rec.MaxLevelMultiply,
			ReferenceStationID: t.referenceID(ref.StorePath, rec.ReferenceRecord),
		}
		if ref.IsCurrent {
			doc.Offsets.FloodBegins = fromSlack(rec.FloodBegins)
			doc.Offsets.EbbBegins = fromSlack(rec.EbbBegins)
		}
	}

	return doc, nil
}

// sparseConstituents lists the record's constituents, omitting entries whose
// amplitude and epoch are both zero. A (0, 0) pair is defined as "not
// present", not "present with zero value".
func (t *Translator) sparseConstituents(rec *Record) []Constituent {
	list := make([]Constituent, 0, len(rec.Amplitudes))
	for c := range rec.Amplitudes {
		amp, epoch := rec.Amplitudes[c], rec.Epochs[c]
		if amp == 0 && epoch == 0 {
			continue
		}
		list = append(list, Constituent{
			Name:  t.vocab.Constituent(c),
			Amp:   amp,
			Epoch: epoch,
		})
	}
	return list
}

// referenceID composes the external id of a subordinate's reference station
// from the stored back-link. Returns "" when the back-link does not resolve.
func (t *Translator) referenceID(storePath string, referenceRecord int) string {
	if referenceRecord < 0 {
		return ""
	}
	index, err := t.cache.ResolveRecord(storePath, referenceRecord)
	if err != nil {
		return ""
	}
	return t.cache.Reverse(index)
}

// Apply maps a document onto a store record, validates it, and persists it
// as an insert or an update. On success it returns the station's directory
// index; the insert path appends to the directory, resorts it and
// invalidates the identity cache before returning.
//
// Validation failures are detected before any write; the translator never
// partially persists.
func (t *Translator) Apply(doc *Document) (int, error) {
	if doc.Type != StationTypeTide && doc.Type != StationTypeCurrent {
		return -1, newError(CategoryMissingField, "the property 'type' must be %q or %q", StationTypeTide, StationTypeCurrent)
	}

	// Resolve the mutation target: explicit index, then external id,
	// otherwise brand-new.
	stationIndex := -1
	if doc.Index != nil {
		stationIndex = *doc.Index
	}
	if doc.ID != "" {
		// An explicit id wins over the index; an unresolvable id means a
		// brand-new station.
		index, err := t.cache.Resolve(doc.ID)
		if err != nil {
			index = -1
		}
		stationIndex = index
	}

	recordNumber := -1
	storePath := t.stores.DefaultPath()
	if ref, ok := t.dir.At(stationIndex); ok {
		recordNumber = ref.RecordNumber
		storePath = ref.StorePath
	}

	st, err := t.stores.Store(storePath)
	if err != nil {
		return -1, wrapStoreError(err, "could not open database %s", storePath)
	}

	// Existing records are the mutation base so unspecified fields survive
	// an update; new records start zeroed.
	var rec *Record
	if recordNumber >= 0 {
		rec, err = st.ReadRecord(recordNumber)
		if err != nil {
			if errors.Is(err, ErrNoRecord) {
				return -1, newError(CategoryNotFound, "no record %d in %s", recordNumber, storePath)
			}
			return -1, wrapStoreError(err, "could not read tide record %d", recordNumber)
		}
	} else {
		rec = NewRecord(t.vocab.Constituents())
	}

	if err := t.populate(rec, doc); err != nil {
		return -1, err
	}

	externalID := rec.ExternalID()
	if externalID == "" {
		return -1, newError(CategoryMissingField, "the properties 'source.context' and 'source.stationId' must be set")
	}

	if recordNumber >= 0 {
		return t.update(st, stationIndex, recordNumber, rec, doc, externalID)
	}
	return t.insert(st, rec, doc, externalID)
}

// populate maps the document's fields onto rec, enforcing the station-kind
// validation rules. rec is only mutated; nothing is persisted here.
func (t *Translator) populate(rec *Record, doc *Document) error {
	rec.Name = doc.Name
	rec.Latitude = doc.Position.Lat
	rec.Longitude = doc.Position.Long
	rec.TZFile = lookup(t.vocab.FindTZFile, doc.Timezone)
	rec.Country = lookup(t.vocab.FindCountry, doc.Country)
	rec.LevelUnits = lookup(t.vocab.FindLevelUnits, doc.LevelUnits)
	rec.Comments = doc.Comments
	rec.Notes = doc.Notes

	if doc.Source != nil {
		rec.Source = doc.Source.Name
		rec.StationIDContext = doc.Source.Context
		rec.StationID = doc.Source.StationID
	}

	if doc.Type == StationTypeCurrent {
		if doc.Flow != nil {
			rec.DirectionUnits = lookup(t.vocab.FindDirUnits, doc.Flow.Units)
			rec.EbbDirection = toDirection(doc.Flow.EbbDirection)
			rec.FloodDirection = toDirection(doc.Flow.FloodDirection)
		}
	} else {
		// Flow is semantically absent for tide stations, not zero.
		rec.EbbDirection = NullDirection
		rec.FloodDirection = NullDirection
	}

	if doc.ReferenceStation {
		rec.Type = ReferenceStation
		rec.ReferenceRecord = -1
		return t.populateHarmonics(rec, doc)
	}
	rec.Type = SubordinateStation
	return t.populateOffsets(rec, doc)
}

func (t *Translator) populateHarmonics(rec *Record, doc *Document) error {
	harm := doc.Harmonics
	if harm == nil {
		return newError(CategoryMissingSection, "reference stations must contain harmonics data")
	}
	if len(harm.Constituents) == 0 {
		return newError(CategoryMissingSection, "reference stations must contain harmonics.constituents data")
	}

	rec.Confidence = harm.Confidence
	rec.Datum = lookup(t.vocab.FindDatum, harm.Datum)
	rec.DatumOffset = harm.DatumOffset
	rec.ZoneOffset = harm.ZoneOffset

	for _, cst := range harm.Constituents {
		c := t.vocab.FindConstituent(cst.Name)
		if c < 0 || c >= len(rec.Amplitudes) {
			continue
		}
		rec.Amplitudes[c] = cst.Amp
		rec.Epochs[c] = cst.Epoch
	}
	return nil
}

func (t *Translator) populateOffsets(rec *Record, doc *Document) error {
	off := doc.Offsets
	if off == nil {
		return newError(CategoryMissingSection, "subordinate stations must contain offsets data")
	}

	refIndex, err := t.cache.Resolve(off.ReferenceStationID)
	if err != nil {
		return newError(CategoryUnresolvedReference, "reference station %q does not exist", off.ReferenceStationID)
	}
	refStation, ok := t.dir.At(refIndex)
	if !ok || !refStation.IsReferenceStation {
		return newError(CategoryUnresolvedReference, "station %q is not a reference station", off.ReferenceStationID)
	}
	rec.ReferenceRecord = refStation.RecordNumber

	rec.MinTimeAdd = off.MinTimeAdd
	rec.MinLevelAdd = off.MinLevelAdd
	rec.MinLevelMultiply = off.MinLevelMultiply
	rec.MaxTimeAdd = off.MaxTimeAdd
	rec.MaxLevelAdd = off.MaxLevelAdd
	rec.MaxLevelMultiply = off.MaxLevelMultiply

	if doc.Type == StationTypeCurrent {
		rec.FloodBegins = toSlack(off.FloodBegins)
		rec.EbbBegins = toSlack(off.EbbBegins)
	} else {
		// Tide subordinates always carry the unknown sentinel, regardless
		// of input.
		rec.FloodBegins = NullSlackOffset
		rec.EbbBegins = NullSlackOffset
	}
	return nil
}

// update persists rec over an existing record. The caller's index must still
// refer to the same external id; updates never resort the directory or
// invalidate the cache because the id is unchanged.
func (t *Translator) update(st Store, stationIndex, recordNumber int, rec *Record, doc *Document, externalID string) (int, error) {
	existingID := t.cache.Reverse(stationIndex)
	if existingID != externalID {
		return -1, newError(CategoryIdentityConflict,
			"station index %d holds id %q which does not match %q", stationIndex, existingID, externalID)
	}

	if err := st.UpdateRecord(recordNumber, rec); err != nil {
		return -1, wrapStoreError(err, "could not update database record number %d", recordNumber)
	}

	// Refresh the directory entry in place. The position is deliberately
	// kept: a rename takes effect in the ordering at the next insert.
	if ref, ok := t.dir.At(stationIndex); ok {
		ref.Name = rec.Name
		ref.Latitude = rec.Latitude
		ref.Longitude = rec.Longitude
		ref.Timezone = t.vocab.TZFile(rec.TZFile)
		ref.IsReferenceStation = doc.ReferenceStation
		ref.IsCurrent = doc.Type == StationTypeCurrent
	}

	t.log.Info("station updated", "id", externalID, "index", stationIndex, "record", recordNumber)
	return stationIndex, nil
}

// insert persists rec as a new record, mints its directory entry, resorts
// the directory and invalidates the identity cache.
func (t *Translator) insert(st Store, rec *Record, doc *Document, externalID string) (int, error) {
	if index, err := t.cache.Resolve(externalID); err == nil {
		return -1, newError(CategoryDuplicateIdentity,
			"station id %q already exists in database (index %d); updates require the 'index' property", externalID, index)
	}

	recordNumber, err := st.AddRecord(rec)
	if err != nil {
		return -1, wrapStoreError(err, "could not add new database record")
	}

	ref := &station.Ref{
		Handle:             station.NewHandle(),
		Name:               rec.Name,
		Latitude:           rec.Latitude,
		Longitude:          rec.Longitude,
		Timezone:           t.vocab.TZFile(rec.TZFile),
		IsCurrent:          doc.Type == StationTypeCurrent,
		IsReferenceStation: doc.ReferenceStation,
		RecordNumber:       recordNumber,
		StorePath:          st.Path(),
	}
	t.dir.Append(ref)
	t.dir.Sort()
	t.cache.Invalidate()

	t.log.Info("station added", "id", externalID, "index", ref.Index, "record", recordNumber, "store", st.Path())
	return ref.Index, nil
}

// lookup maps an enumeration name to its code, falling back to the
// "Unknown" code for absent or unresolved names.
func lookup(find func(string) int, name string) int {
	if name == "" {
		return 0
	}
	if code := find(name); code >= 0 {
		return code
	}
	return 0
}

func fromDirection(dir int) *int {
	if dir == NullDirection {
		return nil
	}
	return &dir
}

func toDirection(dir *int) int {
	if dir == nil {
		return NullDirection
	}
	return *dir
}

func fromSlack(offset int) *int {
	if offset == NullSlackOffset {
		return nil
	}
	return &offset
}

func toSlack(offset *int) int {
	if offset == nil {
		return NullSlackOffset
	}
	return *offset
}
