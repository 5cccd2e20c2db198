package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/hoops/internal/leaderboard"
)

func mustDate(t *testing.T, s string) leaderboard.Date {
	t.Helper()
	d, err := leaderboard.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

// sampleBoard returns a full board with a tie and distinct dates.
func sampleBoard(t *testing.T) leaderboard.Board {
	t.Helper()
	var b leaderboard.Board
	days := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11"}
	scores := []int{50, 90, 70, 70, 10, 0, 120, 33, 8, 64, 65}
	for i, s := range scores {
		var err error
		b, err = b.Record(s, mustDate(t, days[i]))
		if err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	return b
}

func assertSameBoard(t *testing.T, want, got leaderboard.Board) {
	t.Helper()
	if want.Len() != got.Len() {
		t.Fatalf("Expected %d entries, got %d", want.Len(), got.Len())
	}
	for i := 0; i < want.Len(); i++ {
		if want.At(i) != got.At(i) {
			t.Errorf("Entry %d: expected %+v, got %+v", i, want.At(i), got.At(i))
		}
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nope", "scores.json"))
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}

	b, err := store.Load()
	if err != nil {
		t.Fatalf("Load() of missing file failed: %v", err)
	}
	if !b.IsEmpty() {
		t.Errorf("Expected empty leaderboard, got %d entries", b.Len())
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	for _, name := range []string{"scores.json", "scores.yaml", "scores.yml", "scores.dat"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			store, err := NewFileStore(path)
			if err != nil {
				t.Fatalf("NewFileStore() failed: %v", err)
			}

			want := sampleBoard(t)
			if err := store.Save(want); err != nil {
				t.Fatalf("Save() failed: %v", err)
			}
			loaded, err := store.Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			assertSameBoard(t, want, loaded)

			// Saving what was loaded must not change anything.
			if err := store.Save(loaded); err != nil {
				t.Fatalf("second Save() failed: %v", err)
			}
			again, err := store.Load()
			if err != nil {
				t.Fatalf("second Load() failed: %v", err)
			}
			assertSameBoard(t, want, again)
		})
	}
}

func TestFileStoreJSONLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}

	var b leaderboard.Board
	b, _ = b.Record(42, mustDate(t, "2024-02-29"))
	if err := store.Save(b); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"version": 1`, `"score": 42`, `"recorded_on": "2024-02-29"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected %s in stored file:\n%s", want, data)
		}
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "garbage", file: "s.json", content: "\x80\x04\x95 pickled"},
		{name: "empty", file: "s.json", content: ""},
		{name: "future version", file: "s.json", content: `{"version": 2, "entries": []}`},
		{name: "missing version", file: "s.json", content: `{"entries": []}`},
		{name: "bad date", file: "s.json", content: `{"version": 1, "entries": [{"score": 1, "recorded_on": "soon"}]}`},
		{name: "missing date", file: "s.json", content: `{"version": 1, "entries": [{"score": 1}]}`},
		{name: "unsorted", file: "s.json", content: `{"version": 1, "entries": [{"score": 1, "recorded_on": "2024-01-01"}, {"score": 9, "recorded_on": "2024-01-01"}]}`},
		{name: "negative", file: "s.json", content: `{"version": 1, "entries": [{"score": -1, "recorded_on": "2024-01-01"}]}`},
		{name: "yaml garbage", file: "s.yaml", content: "version: [1\n"},
		{name: "yaml empty", file: "s.yaml", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			store, err := NewFileStore(path)
			if err != nil {
				t.Fatalf("NewFileStore() failed: %v", err)
			}

			_, err = store.Load()
			if !errors.Is(err, leaderboard.ErrCorruptStore) {
				t.Fatalf("Expected corrupt store error, got %v", err)
			}
			var cse *leaderboard.CorruptStoreError
			if !errors.As(err, &cse) || cse.Path != path {
				t.Errorf("Expected CorruptStoreError for %s, got %v", path, err)
			}
		})
	}
}

func TestFileStoreWriteErrorKeepsPreviousContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}

	want := sampleBoard(t)
	if err := store.Save(want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// A directory where the temp file's parent should be makes every write fail.
	blocked, err := NewFileStore(filepath.Join(path, "child.json"))
	if err != nil {
		t.Fatalf("NewFileStore() failed: %v", err)
	}
	err = blocked.Save(want)
	if !errors.Is(err, leaderboard.ErrStoreWrite) {
		t.Fatalf("Expected store write error, got %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() after failed save failed: %v", err)
	}
	assertSameBoard(t, want, got)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the store file in %s, found %d entries", dir, len(entries))
	}
}

func TestFileStoreEmptyPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	for _, backend := range []Backend{BackendFile, BackendSQLite, ""} {
		store, err := Open(backend, filepath.Join(dir, "open-"+string(backend)+".store"))
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", backend, err)
		}
		b, err := store.Load()
		if err != nil {
			t.Errorf("Open(%q).Load() failed: %v", backend, err)
		}
		if !b.IsEmpty() {
			t.Errorf("Open(%q): expected empty board", backend)
		}
		store.Close()
	}

	if _, err := Open("redis", filepath.Join(dir, "x")); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.hoops/scores.json")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".hoops", "scores.json"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}

	if got, _ := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath() changed absolute path to %q", got)
	}
}
