// Package store keeps profiles as one JSON file each in a directory, the
// layout the pdf3md service uses under ~/.pdf3md/profiles.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pdf3md/profilectl/internal/profiles"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no file exists for a profile name.
	ErrNotFound = errors.New("profile not found")
	// ErrProtected is returned when deleting the default profile.
	ErrProtected = errors.New("cannot delete default profile")
)

// Store is a directory of profile files. It is safe for concurrent use.
type Store struct {
	dir    string
	logger *zap.Logger
	mu     sync.RWMutex
}

// Open prepares dir and writes the default profile if it is missing.
func Open(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}
	s := &Store{dir: dir, logger: logger}
	if _, err := os.Stat(s.path(profiles.DefaultName)); errors.Is(err, os.ErrNotExist) {
		if err := s.Save(profiles.Default()); err != nil {
			return nil, err
		}
		logger.Info("created default profile", zap.String("dir", dir))
	}
	return s, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, profiles.FileName(name))
}

// List returns a summary of every readable profile, sorted by name.
// Unreadable files are logged and skipped.
func (s *Store) List() ([]profiles.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	list := []profiles.Summary{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			s.logger.Error("reading profile", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		var raw profiles.Summary
		if err := json.Unmarshal(data, &raw); err != nil {
			s.logger.Error("reading profile", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		if raw.Name == "" {
			raw.Name = strings.TrimSuffix(e.Name(), ".json")
		}
		if raw.Version == "" {
			raw.Version = profiles.SchemaVersion
		}
		list = append(list, raw)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Load reads name, filling fields missing from the file with defaults.
func (s *Store) Load(name string) (profiles.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(name)
}

func (s *Store) load(name string) (profiles.Profile, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return profiles.Profile{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return profiles.Profile{}, fmt.Errorf("reading profile %q: %w", name, err)
	}
	p, err := profiles.Parse(data)
	if err != nil {
		return profiles.Profile{}, fmt.Errorf("reading profile %q: %w", name, err)
	}
	if err := profiles.Validate(p); err != nil {
		return profiles.Profile{}, fmt.Errorf("invalid profile %q: %w", name, err)
	}
	return p, nil
}

// Save validates p and writes it, replacing any profile stored under the
// same file name.
func (s *Store) Save(p profiles.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(p)
}

func (s *Store) save(p profiles.Profile) error {
	if err := profiles.Validate(p); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile %q: %w", p.Name, err)
	}
	if err := os.WriteFile(s.path(p.Name), append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing profile %q: %w", p.Name, err)
	}
	s.logger.Info("saved profile", zap.String("name", p.Name))
	return nil
}

// Delete removes name. The default profile cannot be deleted.
func (s *Store) Delete(name string) error {
	if profiles.IsProtected(name) {
		return ErrProtected
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	s.logger.Info("deleted profile", zap.String("name", name))
	return nil
}

// Duplicate copies source under newName with the description "Copy of SOURCE".
func (s *Store) Duplicate(source, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(source)
	if err != nil {
		return err
	}
	p.Name = newName
	p.Description = "Copy of " + source
	return s.save(p)
}
