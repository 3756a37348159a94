package tcdb

import (
	"path/filepath"
	"testing"
)

func TestNewSet_RequiresPaths(t *testing.T) {
	if _, err := NewSet(nil); err == nil {
		t.Error("NewSet(nil) should fail")
	}
}

func TestSet_DefaultPathIsFirst(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.db")
	b := filepath.Join(dir, "b.db")

	set, err := NewSet([]string{a, b})
	if err != nil {
		t.Fatalf("NewSet() failed: %v", err)
	}
	defer set.Close()

	if set.DefaultPath() != a {
		t.Errorf("DefaultPath() = %q, want %q", set.DefaultPath(), a)
	}
	if got := set.Paths(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Paths() = %v", got)
	}
}

func TestSet_StoreCachesByPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")
	set, err := NewSet([]string{path})
	if err != nil {
		t.Fatalf("NewSet() failed: %v", err)
	}
	defer set.Close()

	first, err := set.Store(path)
	if err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	second, err := set.Store(path)
	if err != nil {
		t.Fatalf("second Store() failed: %v", err)
	}
	if first != second {
		t.Error("Store() should return the cached instance")
	}
}

func TestSet_ReadExternalID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.db")
	set, err := NewSet([]string{path})
	if err != nil {
		t.Fatalf("NewSet() failed: %v", err)
	}
	defer set.Close()

	st, err := set.open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	rn, err := st.AddRecord(testRecord(st, "Newport"))
	if err != nil {
		t.Fatalf("AddRecord() failed: %v", err)
	}

	id, err := set.ReadExternalID(path, rn)
	if err != nil {
		t.Fatalf("ReadExternalID() failed: %v", err)
	}
	if id != "NOAA:8452660" {
		t.Errorf("ReadExternalID() = %q", id)
	}

	if _, err := set.ReadExternalID(path, 99); err == nil {
		t.Error("ReadExternalID() for a missing record should fail")
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.db")
	b := filepath.Join(dir, "b.db")

	set, err := NewSet([]string{a, b})
	if err != nil {
		t.Fatalf("NewSet() failed: %v", err)
	}
	defer set.Close()

	stA, err := set.open(a)
	if err != nil {
		t.Fatalf("open a failed: %v", err)
	}
	newport := testRecord(stA, "Newport")
	if _, err := stA.AddRecord(newport); err != nil {
		t.Fatalf("AddRecord() failed: %v", err)
	}

	stB, err := set.open(b)
	if err != nil {
		t.Fatalf("open b failed: %v", err)
	}
	race := testRecord(stB, "The Race")
	race.LevelUnits = stB.FindLevelUnits("knots")
	race.StationID = "ACT2906"
	if _, err := stB.AddRecord(race); err != nil {
		t.Fatalf("AddRecord() failed: %v", err)
	}

	loaded, err := LoadDirectory(set)
	if err != nil {
		t.Fatalf("LoadDirectory() failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", loaded.Len())
	}

	// Canonical order: "Newport" before "The Race".
	first, _ := loaded.At(0)
	second, _ := loaded.At(1)
	if first.Name != "Newport" || second.Name != "The Race" {
		t.Errorf("order = %q, %q", first.Name, second.Name)
	}
	if first.StorePath != a || second.StorePath != b {
		t.Error("store paths not carried into the directory")
	}
	if !first.IsReferenceStation {
		t.Error("record type not carried into the directory")
	}
	if first.IsCurrent {
		t.Error("feet station must load as tide")
	}
	if !second.IsCurrent {
		t.Error("knots station must load as current")
	}
	if second.Timezone != ":America/New_York" {
		t.Errorf("Timezone = %q", second.Timezone)
	}
}
