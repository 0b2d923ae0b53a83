package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSQLiteMemoryDSNIsUnique(t *testing.T) {
	first := SQLiteMemoryDSN("Test/Case name")
	second := SQLiteMemoryDSN("Test/Case name")
	if first == second {
		t.Fatalf("expected distinct DSNs, got %q twice", first)
	}

	db, err := NewSQLiteMemoryDB(t.Name())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestLoadGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden.json")
	if err := os.WriteFile(path, []byte(`{"name":"Acme"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got struct {
		Name string `json:"name"`
	}
	if err := LoadGolden(path, &got); err != nil {
		t.Fatalf("LoadGolden: %v", err)
	}
	if got.Name != "Acme" {
		t.Fatalf("expected Acme, got %q", got.Name)
	}
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing fixture")
	}
}
