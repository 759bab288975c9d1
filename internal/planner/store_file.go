package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultUsageFile is where usage is kept when no path is configured
const DefaultUsageFile = "usersData.json"

// FileStore keeps the usage document as pretty-printed JSON on disk.
// Every Save rewrites the whole file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed usage store
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultUsageFile
	}
	return &FileStore{path: path}
}

// Path returns the file the store writes to
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the usage document. A missing file yields empty usage.
func (s *FileStore) Load(_ context.Context) (Usage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Usage{}, nil
		}
		return nil, fmt.Errorf("failed to read usage file: %w", err)
	}

	usage := Usage{}
	if len(data) == 0 {
		return usage, nil
	}
	if err := json.Unmarshal(data, &usage); err != nil {
		return nil, fmt.Errorf("failed to parse usage file: %w", err)
	}
	return usage, nil
}

// Save writes the usage document to a temporary file and renames it into place
// so readers never observe a partially written file
func (s *FileStore) Save(_ context.Context, usage Usage) error {
	data, err := json.MarshalIndent(usage, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize usage: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create usage directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp usage file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName) // no-op after a successful rename
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write usage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close usage file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to set usage file permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace usage file: %w", err)
	}
	return nil
}
