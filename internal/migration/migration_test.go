package migration

import (
	"database/sql"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_add_index.sql":  {Data: []byte("CREATE INDEX idx ON t(a);")},
		"001_init.sql":       {Data: []byte("CREATE TABLE t (a TEXT);")},
		"010_add_column.sql": {Data: []byte("ALTER TABLE t ADD COLUMN b TEXT;")},
		"README.md":          {Data: []byte("not a migration")},
	}

	r := NewRunner(nil, fsys)
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles() failed: %v", err)
	}

	if len(migrations) != 3 {
		t.Fatalf("got %d migrations, want 3", len(migrations))
	}

	wantVersions := []int{1, 2, 10}
	wantNames := []string{"init", "add_index", "add_column"}
	for i, m := range migrations {
		if m.Version != wantVersions[i] {
			t.Errorf("migration %d version = %d, want %d", i, m.Version, wantVersions[i])
		}
		if m.Name != wantNames[i] {
			t.Errorf("migration %d name = %q, want %q", i, m.Name, wantNames[i])
		}
		if m.SQL == "" {
			t.Errorf("migration %d has empty SQL", i)
		}
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  string
	}{
		{name: "no version prefix", filename: "init.sql", wantErr: "invalid migration filename"},
		{name: "non-numeric version", filename: "abc_init.sql", wantErr: "invalid version number"},
		{name: "zero version", filename: "000_init.sql", wantErr: "invalid version number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				tt.filename: {Data: []byte("SELECT 1;")},
			}
			r := NewRunner(nil, fsys)
			_, err := r.ReadMigrationFiles()
			if err == nil {
				t.Fatalf("ReadMigrationFiles() should reject %q", tt.filename)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestReadMigrationFilesRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("CREATE TABLE t (a TEXT);")},
		"001_other.sql": {Data: []byte("CREATE TABLE u (a TEXT);")},
	}

	r := NewRunner(nil, fsys)
	if _, err := r.ReadMigrationFiles(); err == nil || !strings.Contains(err.Error(), "duplicate migration version") {
		t.Errorf("ReadMigrationFiles() = %v, want duplicate version error", err)
	}
}

func TestValidateVersionAcceptsStaleSchema(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql":       {Data: []byte("CREATE TABLE t (a TEXT);")},
		"002_add_column.sql": {Data: []byte("ALTER TABLE t ADD COLUMN b TEXT;")},
	}
	r := NewRunner(db, fsys)

	// A database behind the shipped migrations must still open, otherwise
	// the migrate command could never bring it up to date
	if err := r.ValidateVersion(); err != nil {
		t.Fatalf("ValidateVersion() on stale schema = %v, want nil", err)
	}

	applied, err := r.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied %d migrations, want 2", applied)
	}

	version, err := r.CurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", version)
	}
	if err := r.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion() after migrating = %v, want nil", err)
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE t (a TEXT);")},
	}
	r := NewRunner(db, fsys)

	if _, err := r.CurrentVersion(); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (9)"); err != nil {
		t.Fatal(err)
	}

	err := r.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() = %v, want newer-than-supported error", err)
	}
}
