package tcdb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

const recordColumns = `name, latitude, longitude, tzfile, record_type,
	reference_record, country, level_units, confidence, datum, datum_offset,
	zone_offset, direction_units, min_direction, max_direction, min_time_add,
	min_level_add, min_level_multiply, max_time_add, max_level_add,
	max_level_multiply, flood_begins, ebb_begins, source, station_id_context,
	station_id, comments, notes`

// ReadRecord implements harmonics.Store. Unknown record numbers yield an
// error wrapping harmonics.ErrNoRecord.
func (s *Store) ReadRecord(recordNumber int) (*harmonics.Record, error) {
	rec := harmonics.NewRecord(s.Constituents())

	var recordType int
	row := s.db.QueryRow(
		"SELECT "+recordColumns+" FROM records WHERE record_num = ?", recordNumber)
	err := row.Scan(
		&rec.Name, &rec.Latitude, &rec.Longitude, &rec.TZFile, &recordType,
		&rec.ReferenceRecord, &rec.Country, &rec.LevelUnits, &rec.Confidence,
		&rec.Datum, &rec.DatumOffset, &rec.ZoneOffset, &rec.DirectionUnits,
		&rec.EbbDirection, &rec.FloodDirection, &rec.MinTimeAdd,
		&rec.MinLevelAdd, &rec.MinLevelMultiply, &rec.MaxTimeAdd,
		&rec.MaxLevelAdd, &rec.MaxLevelMultiply, &rec.FloodBegins,
		&rec.EbbBegins, &rec.Source, &rec.StationIDContext, &rec.StationID,
		&rec.Comments, &rec.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", recordNumber, harmonics.ErrNoRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("read record %d: %w", recordNumber, err)
	}
	rec.Type = harmonics.RecordType(recordType)

	if err := s.readConstituents(recordNumber, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// readConstituents fills the record's sparse arrays from the join table.
// Only non-zero pairs are stored, so absent rows stay (0, 0).
func (s *Store) readConstituents(recordNumber int, rec *harmonics.Record) error {
	rows, err := s.db.Query(
		"SELECT constituent_num, amplitude, epoch FROM record_constituents WHERE record_num = ?",
		recordNumber)
	if err != nil {
		return fmt.Errorf("read record %d constituents: %w", recordNumber, err)
	}
	defer rows.Close()

	for rows.Next() {
		var num int
		var amp, epoch float64
		if err := rows.Scan(&num, &amp, &epoch); err != nil {
			return fmt.Errorf("read record %d constituents: %w", recordNumber, err)
		}
		if num < 0 || num >= len(rec.Amplitudes) {
			continue
		}
		rec.Amplitudes[num] = amp
		rec.Epochs[num] = epoch
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read record %d constituents: %w", recordNumber, err)
	}
	return nil
}
