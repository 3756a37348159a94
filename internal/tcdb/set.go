package tcdb

import (
	"fmt"

	"github.com/marinerlabs/tidedb/internal/harmonics"
)

// Set opens stores on demand and caches them by path. It implements
// harmonics.StoreSet; the first path listed receives brand-new records.
type Set struct {
	paths  []string
	stores map[string]*Store
}

// NewSet returns a set over the given store paths. Stores are opened lazily
// on first use.
func NewSet(paths []string) (*Set, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one store path is required")
	}
	return &Set{paths: paths, stores: make(map[string]*Store)}, nil
}

// Paths returns the configured store paths in order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.paths))
	copy(out, s.paths)
	return out
}

// DefaultPath implements harmonics.StoreSet.
func (s *Set) DefaultPath() string {
	return s.paths[0]
}

// Store implements harmonics.StoreSet.
func (s *Set) Store(path string) (harmonics.Store, error) {
	st, err := s.open(path)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Vocabulary returns the default store's vocabulary. All stores in a set
// share the same seeded enumerations.
func (s *Set) Vocabulary() (harmonics.Vocabulary, error) {
	return s.open(s.DefaultPath())
}

// ReadExternalID reads the external id held by one record. It satisfies
// station.IDReader for identity cache rebuilds.
func (s *Set) ReadExternalID(path string, recordNumber int) (string, error) {
	st, err := s.open(path)
	if err != nil {
		return "", err
	}
	rec, err := st.ReadRecord(recordNumber)
	if err != nil {
		return "", err
	}
	return rec.ExternalID(), nil
}

// Close closes every open store. The first failure is returned; remaining
// stores are still closed.
func (s *Set) Close() error {
	var firstErr error
	for _, st := range s.stores {
		if err := st.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.stores = make(map[string]*Store)
	return firstErr
}

func (s *Set) open(path string) (*Store, error) {
	if st, ok := s.stores[path]; ok {
		return st, nil
	}
	st, err := Open(path)
	if err != nil {
		return nil, err
	}
	s.stores[path] = st
	return st, nil
}
