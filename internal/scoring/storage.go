package scoring

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RecordStorage loads and saves finished games.
// This allows for mocking the storage layer during tests.
type RecordStorage interface {
	// LoadAll loads every record from the persistence layer.
	LoadAll() ([]RecordEntry, error)
	// SaveAll overwrites the persistence layer with entries.
	SaveAll(entries []RecordEntry) error
}

// JSONFileStorage stores one JSON object per line in a file.
type JSONFileStorage struct {
	path string
}

// DefaultRecordsPath is ~/.config/go-sweep/records.json.
func DefaultRecordsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "go-sweep", "records.json"), nil
}

// NewJSONFileStorage uses path, or the default records path when path is empty.
func NewJSONFileStorage(path string) (*JSONFileStorage, error) {
	if path == "" {
		p, err := DefaultRecordsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &JSONFileStorage{path: path}, nil
}

func (jfs *JSONFileStorage) Path() string {
	return jfs.path
}

// LoadAll reads and decodes every record in the file.
func (jfs *JSONFileStorage) LoadAll() ([]RecordEntry, error) {
	file, err := os.Open(jfs.path)
	if errors.Is(err, os.ErrNotExist) {
		return []RecordEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening records file for reading: %w", err)
	}
	defer file.Close()

	entries := make([]RecordEntry, 0)
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var entry RecordEntry
		if err := decoder.Decode(&entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error decoding record: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// SaveAll encodes and writes every record, replacing the file.
func (jfs *JSONFileStorage) SaveAll(entries []RecordEntry) error {
	if err := os.MkdirAll(filepath.Dir(jfs.path), 0755); err != nil {
		return fmt.Errorf("error creating records directory: %w", err)
	}

	file, err := os.OpenFile(jfs.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening records file for writing: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)

	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return fmt.Errorf("error encoding record: %w", err)
		}
	}

	return writer.Flush()
}
