// Package harmonics implements the station-record translation layer: the
// bidirectional, validated mapping between structured station documents and
// the fixed-schema records held in a harmonics store.
//
// The package owns:
//   - Record, the fixed-schema store record and its sentinel encoding
//   - Document, the external JSON contract for a full station definition
//   - Translator, which renders records as documents and applies documents
//     as inserts or updates against the store and station directory
//   - the error taxonomy shared with callers (Category, Error, WriteResult)
//
// Collaborators are consumed through narrow interfaces: Vocabulary for
// name/code enumeration lookups and Store/StoreSet for record persistence.
// The sentinel values 361 (unknown direction) and 2560 (unknown slack
// corrector) never leak into documents; optional document fields convert to
// and from them at the store edge.
package harmonics
