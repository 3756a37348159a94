package tcdb

import (
	"database/sql"
	"fmt"
)

// enum is one in-memory vocabulary table. Codes are dense ordinals.
type enum struct {
	names []string
	codes map[string]int
}

func (e *enum) name(code int) string {
	if code < 0 || code >= len(e.names) {
		return ""
	}
	return e.names[code]
}

func (e *enum) find(name string) int {
	if code, ok := e.codes[name]; ok {
		return code
	}
	return -1
}

func (e *enum) count() int {
	return len(e.names)
}

// vocab bundles the six seeded enumerations.
type vocab struct {
	countries    enum
	tzfiles      enum
	levelUnits   enum
	dirUnits     enum
	datums       enum
	constituents enum
}

func loadVocab(db *sql.DB) (*vocab, error) {
	v := &vocab{}
	tables := []struct {
		table string
		dst   *enum
	}{
		{"countries", &v.countries},
		{"tzfiles", &v.tzfiles},
		{"level_units", &v.levelUnits},
		{"dir_units", &v.dirUnits},
		{"datums", &v.datums},
		{"constituents", &v.constituents},
	}
	for _, t := range tables {
		if err := loadEnum(db, t.table, t.dst); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func loadEnum(db *sql.DB, table string, dst *enum) error {
	rows, err := db.Query(fmt.Sprintf("SELECT num, name FROM %s ORDER BY num", table))
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	dst.codes = make(map[string]int)
	for rows.Next() {
		var num int
		var name string
		if err := rows.Scan(&num, &name); err != nil {
			return fmt.Errorf("load %s: %w", table, err)
		}
		// Seeded codes are dense; pad so names stays index-addressable
		// if a gap ever appears.
		for len(dst.names) < num {
			dst.names = append(dst.names, "")
		}
		dst.names = append(dst.names, name)
		dst.codes[name] = num
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	return nil
}

// harmonics.Vocabulary implementation.

func (s *Store) Country(code int) string       { return s.vocab.countries.name(code) }
func (s *Store) FindCountry(name string) int   { return s.vocab.countries.find(name) }
func (s *Store) TZFile(code int) string        { return s.vocab.tzfiles.name(code) }
func (s *Store) FindTZFile(name string) int    { return s.vocab.tzfiles.find(name) }
func (s *Store) LevelUnits(code int) string    { return s.vocab.levelUnits.name(code) }
func (s *Store) FindLevelUnits(name string) int { return s.vocab.levelUnits.find(name) }
func (s *Store) DirUnits(code int) string      { return s.vocab.dirUnits.name(code) }
func (s *Store) FindDirUnits(name string) int  { return s.vocab.dirUnits.find(name) }
func (s *Store) Datum(code int) string         { return s.vocab.datums.name(code) }
func (s *Store) FindDatum(name string) int     { return s.vocab.datums.find(name) }
func (s *Store) Constituent(code int) string   { return s.vocab.constituents.name(code) }
func (s *Store) FindConstituent(name string) int { return s.vocab.constituents.find(name) }

func (s *Store) Countries() int      { return s.vocab.countries.count() }
func (s *Store) TZFiles() int        { return s.vocab.tzfiles.count() }
func (s *Store) LevelUnitTypes() int { return s.vocab.levelUnits.count() }
func (s *Store) DirUnitTypes() int   { return s.vocab.dirUnits.count() }
func (s *Store) DatumTypes() int     { return s.vocab.datums.count() }
func (s *Store) Constituents() int   { return s.vocab.constituents.count() }
