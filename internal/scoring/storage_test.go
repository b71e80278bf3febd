package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestJSONFileStorage_SaveAndLoad(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "nested", "records.json")
	storage, err := NewJSONFileStorage(testPath)
	if err != nil {
		t.Fatalf("NewJSONFileStorage failed: %v", err)
	}

	// 1. Load on a missing file returns nothing
	entries, err := storage.LoadAll()
	if err != nil {
		t.Errorf("LoadAll on non-existent file returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(entries))
	}

	// 2. Save creates the directory and file
	testEntries := []RecordEntry{
		{Board: "10x10/10", Seconds: 31, Won: true, Timestamp: "2026-01-01T00:00:00Z"},
		{Board: "30x16/99", Seconds: 4, Won: false, Timestamp: "2026-01-02T00:00:00Z"},
	}
	if err := storage.SaveAll(testEntries); err != nil {
		t.Fatalf("SaveAll returned error: %v", err)
	}
	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("File was not created at %s", testPath)
	}

	// 3. Load returns what was saved
	loaded, err := storage.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(loaded) != len(testEntries) {
		t.Fatalf("Expected %d entries, got %d", len(testEntries), len(loaded))
	}
	if loaded[0] != testEntries[0] || loaded[1] != testEntries[1] {
		t.Errorf("Loaded content mismatch. Got: %+v", loaded)
	}
}

func TestJSONFileStorage_CorruptFile(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(testPath, []byte("{ not valid json }"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	storage := &JSONFileStorage{path: testPath}
	if _, err := storage.LoadAll(); err == nil {
		t.Error("Expected error when loading corrupt file, got nil")
	}
}

func TestJSONFileStorage_EmptyFile(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(testPath, []byte(""), 0644); err != nil {
		t.Fatalf("Failed to write empty file: %v", err)
	}

	storage := &JSONFileStorage{path: testPath}
	entries, err := storage.LoadAll()
	if err != nil {
		t.Errorf("LoadAll on empty file returned error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 entries from empty file, got %d", len(entries))
	}
}

func TestNewJSONFileStorage_DefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	storage, err := NewJSONFileStorage("")
	if err != nil {
		t.Fatalf("NewJSONFileStorage failed: %v", err)
	}
	if filepath.Base(storage.Path()) != "records.json" {
		t.Errorf("unexpected default path %s", storage.Path())
	}
}
