package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/arbor/pkg/domain"
)

// Store implements ports.StateStore using the local filesystem.
// It stores sessions as JSON files in a configured directory.
type Store struct {
	BasePath string
}

// NewStore creates a file-backed session store rooted at basePath.
// If basePath is empty, it defaults to ".arbor/sessions".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".arbor", "sessions")
	}
	return &Store{BasePath: basePath}
}

func validSessionID(sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID cannot be empty")
	}
	if strings.ContainsAny(sessionID, `/\`) {
		return fmt.Errorf("sessionID cannot contain path separators")
	}
	return nil
}

// Save persists the session state to a JSON file atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it
// into place. The temp file lives in the same directory so the rename never
// crosses filesystems.
func (s *Store) Save(ctx context.Context, sessionID string, state *domain.State) error {
	if err := validSessionID(sessionID); err != nil {
		return err
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure session directory: %w", err)
	}

	destPath := filepath.Join(s.BasePath, sessionID+".json")

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+sessionID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}

	// Rename of an open file fails on Windows, so close first.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename onto an existing file also fails on Windows, so remove the
	// destination first. The remove+rename window is acceptable for CLI
	// usage; a partial write never is.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing session file for overwrite: %w", err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}

	return nil
}

// Load retrieves the session state from a JSON file.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	if err := validSessionID(sessionID); err != nil {
		return nil, err
	}

	filePath := filepath.Join(s.BasePath, sessionID+".json")

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	return &state, nil
}

// Delete removes the session file.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := validSessionID(sessionID); err != nil {
		return err
	}

	filePath := filepath.Join(s.BasePath, sessionID+".json")

	err := os.Remove(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}

	return nil
}

// List returns all persisted session IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var sessions []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		sessions = append(sessions, strings.TrimSuffix(entry.Name(), ".json"))
	}

	return sessions, nil
}
