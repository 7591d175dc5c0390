package wallet

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Record is the durable subset of a session used to attempt silent reconnect
// at startup. It is not authoritative: the manager always re-verifies it
// against the live provider before trusting it.
type Record struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	Network     string `json:"network"`
	NetworkType string `json:"networkType"`
}

// Store persists the last-known wallet identity under a fixed key.
// Absence or parse failure means "no saved session", never an error.
type Store interface {
	Load() (Record, bool)
	Save(rec Record) error
	Clear() error
}

// FileStore keeps the record as JSON in a single file, the local-storage
// analog for non-browser hosts. Last writer wins.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at path. The parent directory is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Record, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false
	}
	if rec.ID == "" && rec.Address == "" {
		return Record{}, false
	}
	return rec, true
}

func (s *FileStore) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
