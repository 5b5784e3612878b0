// Package session remembers the player's last New Game selection between runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/younwookim/dungeonmenu/internal/domain/dungeon"
)

const fileVersion = "1"

// Data is the on-disk session file.
type Data struct {
	Version   string            `json:"version"`
	Selection dungeon.Selection `json:"selection"`
	SavedAt   string            `json:"savedAt"`
}

// Store is a JSON file holding the last confirmed selection.
type Store struct {
	path   string
	logger *zap.Logger

	mu   sync.Mutex
	data *Data
}

// NewStore opens the session file at path. A missing or unreadable file
// starts an empty session.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{path: path, logger: logger.Named("SessionStore")}

	data, err := Load(path)
	switch {
	case err == nil:
		s.data = data
	case errors.Is(err, fs.ErrNotExist):
	default:
		s.logger.Warn("Ignoring unreadable session file", zap.String("path", path), zap.Error(err))
	}
	return s
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// LastSelection returns the remembered selection, if any.
func (s *Store) LastSelection() (dungeon.Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil || !s.data.Selection.Complete() {
		return dungeon.Selection{}, false
	}
	return s.data.Selection, true
}

// SaveSelection remembers sel and writes the session file.
func (s *Store) SaveSelection(sel dungeon.Selection) error {
	if !sel.Complete() {
		return fmt.Errorf("incomplete selection")
	}

	data := &Data{
		Version:   fileVersion,
		Selection: sel,
		SavedAt:   time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := Save(s.path, data); err != nil {
		return err
	}
	s.data = data
	s.logger.Debug("Selection saved", zap.String("dungeon", sel.DungeonID), zap.String("config", sel.ConfigID))
	return nil
}

// Save writes session data to a file, creating its directory.
func Save(filename string, data *Data) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := filename + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write session: %w", err)
	}

	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Load reads session data from a file.
func Load(filename string) (*Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Data
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if data.Version != fileVersion {
		return nil, fmt.Errorf("unsupported session version %q", data.Version)
	}

	return &data, nil
}
