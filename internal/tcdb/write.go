package tcdb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

// AddRecord implements harmonics.Store. The new record number is the next
// dense ordinal; the write of the row and its constituents is one
// transaction.
func (s *Store) AddRecord(rec *harmonics.Record) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return -1, fmt.Errorf("add record: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var next int
	if err := tx.QueryRow("SELECT COALESCE(MAX(record_num), -1) + 1 FROM records").Scan(&next); err != nil {
		return -1, fmt.Errorf("add record: next record number: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO records (record_num, "+recordColumns+") VALUES (?"+valuePlaceholders+")",
		recordArgs(next, rec)...,
	); err != nil {
		return -1, classify(fmt.Errorf("add record %d: %w", next, err))
	}

	if err := writeConstituents(tx, next, rec); err != nil {
		return -1, err
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("add record %d: commit: %w", next, err)
	}
	return next, nil
}

// UpdateRecord implements harmonics.Store. The row is replaced in place and
// the constituent set rewritten; updating a record number that does not
// exist yields an error wrapping harmonics.ErrNoRecord.
func (s *Store) UpdateRecord(recordNumber int, rec *harmonics.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update record %d: begin tx: %w", recordNumber, err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow("SELECT 1 FROM records WHERE record_num = ?", recordNumber).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("record %d: %w", recordNumber, harmonics.ErrNoRecord)
	}
	if err != nil {
		return fmt.Errorf("update record %d: %w", recordNumber, err)
	}

	if _, err := tx.Exec(
		"DELETE FROM records WHERE record_num = ?", recordNumber,
	); err != nil {
		return fmt.Errorf("update record %d: %w", recordNumber, err)
	}
	if _, err := tx.Exec(
		"INSERT INTO records (record_num, "+recordColumns+") VALUES (?"+valuePlaceholders+")",
		recordArgs(recordNumber, rec)...,
	); err != nil {
		return classify(fmt.Errorf("update record %d: %w", recordNumber, err))
	}

	if err := writeConstituents(tx, recordNumber, rec); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update record %d: commit: %w", recordNumber, err)
	}
	return nil
}

// writeConstituents stores the record's sparse arrays, keeping only
// non-zero (amplitude, epoch) pairs.
func writeConstituents(tx *sql.Tx, recordNumber int, rec *harmonics.Record) error {
	for c := range rec.Amplitudes {
		amp, epoch := rec.Amplitudes[c], rec.Epochs[c]
		if amp == 0 && epoch == 0 {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO record_constituents (record_num, constituent_num, amplitude, epoch) VALUES (?, ?, ?, ?)",
			recordNumber, c, amp, epoch,
		); err != nil {
			return classify(fmt.Errorf("write record %d constituent %d: %w", recordNumber, c, err))
		}
	}
	return nil
}

// valuePlaceholders matches recordColumns: one "?" per column after the
// leading record_num placeholder.
var valuePlaceholders = func() string {
	s := ""
	for i := 0; i < 28; i++ {
		s += ", ?"
	}
	return s
}()

func recordArgs(recordNumber int, rec *harmonics.Record) []any {
	return []any{
		recordNumber,
		rec.Name, rec.Latitude, rec.Longitude, rec.TZFile, int(rec.Type),
		rec.ReferenceRecord, rec.Country, rec.LevelUnits, rec.Confidence,
		rec.Datum, rec.DatumOffset, rec.ZoneOffset, rec.DirectionUnits,
		rec.EbbDirection, rec.FloodDirection, rec.MinTimeAdd,
		rec.MinLevelAdd, rec.MinLevelMultiply, rec.MaxTimeAdd,
		rec.MaxLevelAdd, rec.MaxLevelMultiply, rec.FloodBegins,
		rec.EbbBegins, rec.Source, rec.StationIDContext, rec.StationID,
		rec.Comments, rec.Notes,
	}
}

// classify wraps constraint violations with harmonics.ErrDataContent so the
// translator can report them as client errors; infrastructure failures pass
// through unchanged.
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%w: %v", harmonics.ErrDataContent, err)
	}
	return err
}
