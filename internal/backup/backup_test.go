package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "calmind.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create kv table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('calmind_tasks_local', '[]'), ('calmind_goals_local', '[]')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

func countKeys(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM kv").Scan(&n); err != nil {
		t.Fatalf("failed to count keys in %s: %v", path, err)
	}
	return n
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if want := filepath.Join(mgr.Dir(), "calmind-20260102-030405.db"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if n := countKeys(t, path); n != 2 {
		t.Errorf("backup has %d keys, want 2", n)
	}
}

func TestCreateBackupNoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("expected ErrNoDatabase, got %v", err)
	}
}

func TestUniqueNamesAndOrdering(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	var paths []string
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup %d failed: %v", i, err)
		}
		paths = append(paths, p)
	}
	if filepath.Base(paths[2]) != "calmind-20260102-030405-2.db" {
		t.Errorf("third backup = %s", filepath.Base(paths[2]))
	}

	list, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("List returned %d backups, want 3", len(list))
	}
	for i, want := range []string{paths[2], paths[1], paths[0]} {
		if list[i].Path != want {
			t.Errorf("list[%d] = %s, want %s", i, list[i].Path, want)
		}
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		mgr.now = fixedClock(start.Add(time.Duration(i) * time.Hour))
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatal(err)
		}
	}

	list, _ := mgr.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(list))
	}
	if !list[2].Timestamp.Equal(start.Add(2 * time.Hour)) {
		t.Errorf("oldest kept = %v", list[2].Timestamp)
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if list, err := mgr.List(); err != nil || len(list) != 0 {
		t.Fatalf("List on missing dir = %v, %v", list, err)
	}

	os.MkdirAll(mgr.Dir(), 0o700)
	for _, name := range []string{"notes.txt", "calmind-garbage.db", "calmind-20260101-000000-x.db"} {
		os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0o600)
	}
	list, _ := mgr.List()
	if len(list) != 0 {
		t.Errorf("expected foreign files to be ignored, got %+v", list)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	db, _ := sql.Open("sqlite", dbPath)
	if _, err := db.Exec(`INSERT INTO kv (key, value) VALUES ('calmind_profile_local', '{}')`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	mgr.now = fixedClock(time.Date(2026, 1, 2, 4, 0, 0, 0, time.UTC))
	previous, err := mgr.Restore(filepath.Base(path))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if n := countKeys(t, dbPath); n != 2 {
		t.Errorf("restored database has %d keys, want 2", n)
	}
	if previous == "" || countKeys(t, previous) != 3 {
		t.Errorf("pre-restore snapshot %q missing or incomplete", previous)
	}
}

func TestRestoreRejectsInvalid(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	os.WriteFile(bogus, []byte("not a database"), 0o600)

	other := filepath.Join(t.TempDir(), "other.db")
	db, _ := sql.Open("sqlite", other)
	db.Exec(`CREATE TABLE unrelated (id INTEGER)`)
	db.Close()

	tests := []struct {
		name string
		ref  string
		want error
	}{
		{name: "missing", ref: "calmind-20200101-000000.db", want: ErrNotFound},
		{name: "corrupt", ref: bogus, want: ErrInvalid},
		{name: "foreign schema", ref: other, want: ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := mgr.Restore(tt.ref); !errors.Is(err, tt.want) {
				t.Errorf("Restore(%s) error = %v, want %v", tt.ref, err, tt.want)
			}
		})
	}
	if n := countKeys(t, dbPath); n != 2 {
		t.Errorf("database modified by failed restore: %d keys", n)
	}
}
