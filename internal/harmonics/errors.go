package harmonics

import (
	"errors"
	"fmt"
)

// Category identifies a failure class in the translator's contract.
type Category string

const (
	// CategoryMissingSection indicates a required sub-document is absent,
	// e.g. no harmonics section on a reference station.
	CategoryMissingSection Category = "missing-required-section"

	// CategoryMissingField indicates a required scalar field is absent,
	// e.g. no source context.
	CategoryMissingField Category = "missing-required-field"

	// CategoryUnresolvedReference indicates a referenceStationId that does
	// not resolve to an existing reference station.
	CategoryUnresolvedReference Category = "unresolved-reference"

	// CategoryIdentityConflict indicates an update whose document composes
	// a different external id than the one stored at the supplied index.
	CategoryIdentityConflict Category = "identity-conflict"

	// CategoryDuplicateIdentity indicates an insert whose external id is
	// already present in the directory.
	CategoryDuplicateIdentity Category = "duplicate-identity"

	// CategoryNotFound indicates an unknown station id or index.
	CategoryNotFound Category = "not-found"

	// CategoryStoreUnavailable indicates the backing store could not be
	// opened, read or written.
	CategoryStoreUnavailable Category = "store-unavailable"
)

// Error is a translator failure carrying a machine-checkable category.
type Error struct {
	Category Category
	Message  string
	Err      error // underlying store error, optional
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Category, e.Detail())
}

// Detail renders the outward-facing message, appending any diagnostic text
// the store produced. Store failures are reported as-is to the client.
func (e *Error) Detail() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the failure onto the conventional success/client-error/
// server-error banding. Store failures caused by record content downgrade
// from server error to client error.
func (e *Error) StatusCode() int {
	switch e.Category {
	case CategoryNotFound:
		return 404
	case CategoryStoreUnavailable:
		if errors.Is(e.Err, ErrDataContent) {
			return 400
		}
		return 500
	default:
		return 400
	}
}

// CategoryOf extracts the category from an error chain. Returns "" when the
// error is not a translator Error.
func CategoryOf(err error) Category {
	var te *Error
	if errors.As(err, &te) {
		return te.Category
	}
	return ""
}

// IsCategory reports whether err carries the given category.
// Uses errors.As to handle wrapped errors.
func IsCategory(err error, cat Category) bool {
	return CategoryOf(err) == cat
}

// NotFound reports an unknown station key or index.
func NotFound(key string, err error) *Error {
	return &Error{
		Category: CategoryNotFound,
		Message:  fmt.Sprintf("no station %q", key),
		Err:      err,
	}
}

func newError(cat Category, format string, args ...any) *Error {
	return &Error{Category: cat, Message: fmt.Sprintf(format, args...)}
}

func wrapStoreError(err error, format string, args ...any) *Error {
	return &Error{
		Category: CategoryStoreUnavailable,
		Message:  fmt.Sprintf(format, args...),
		Err:      err,
	}
}

// WriteResult is the external result contract for write operations.
type WriteResult struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Index      *int   `json:"index,omitempty"`
}

// Result folds a translator outcome into a WriteResult. A nil error yields
// a 200 result carrying the index; translator errors yield their banded
// status and message; any other error is reported as a server error.
func Result(index int, err error) WriteResult {
	if err == nil {
		return WriteResult{StatusCode: 200, Index: &index}
	}
	var te *Error
	if errors.As(err, &te) {
		return WriteResult{StatusCode: te.StatusCode(), Message: te.Detail()}
	}
	return WriteResult{StatusCode: 500, Message: err.Error()}
}
