package harmonics

import "errors"

// ErrNoRecord is returned by Store.ReadRecord and Store.UpdateRecord when
// the record number does not exist in the store.
var ErrNoRecord = errors.New("no such record")

// ErrDataContent marks a store write failure caused by the record's content
// rather than by infrastructure. Stores wrap constraint-style failures with
// it so the translator can downgrade the failure to a client error.
var ErrDataContent = errors.New("record content rejected")

// Header describes a harmonics store.
type Header struct {
	MajorRev        int `json:"major_rev"`
	MinorRev        int `json:"minor_rev"`
	StartYear       int `json:"start_year"`
	NumberOfYears   int `json:"number_of_years"`
	NumberOfRecords int `json:"number_of_records"`
}

// Store is the record-level interface onto one physical harmonics database.
// Record numbers are dense ordinals starting at 0; they are durable for the
// lifetime of the store and never reused.
type Store interface {
	// Path identifies the physical store. Together with a record number it
	// forms a durable station identity.
	Path() string

	Header() (Header, error)

	// ReadRecord loads one record. Returns an error wrapping ErrNoRecord
	// when recordNumber is out of range.
	ReadRecord(recordNumber int) (*Record, error)

	// AddRecord appends a record and returns its new record number.
	AddRecord(rec *Record) (int, error)

	// UpdateRecord persists rec in place of an existing record.
	UpdateRecord(recordNumber int, rec *Record) error
}

// StoreSet resolves store paths to open stores. Implementations own the
// lifecycle of the underlying files.
type StoreSet interface {
	Store(path string) (Store, error)

	// DefaultPath is the store that receives brand-new records.
	DefaultPath() string
}
