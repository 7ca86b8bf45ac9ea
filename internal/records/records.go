// Package records persists assessment records as a JSON file keyed by
// source document and dimension. Later writes to a key replace earlier ones.
package records

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dotcommander/papereval/internal/evaluation"
)

// FormatVersion is written to every store file.
const FormatVersion = "1.0"

// Entry is one stored record.
type Entry struct {
	Source      string            `json:"source"`
	Dimension   string            `json:"dimension"`
	Fingerprint string            `json:"fingerprint"`
	Record      evaluation.Record `json:"record"`
}

// Store is the on-disk record collection.
type Store struct {
	Version   string           `json:"version"`
	UpdatedAt string           `json:"updated_at,omitempty"`
	Entries   map[string]Entry `json:"entries"`
	path      string
}

// Key joins a source document and dimension into a store key.
func Key(source, dimension string) string {
	return source + "#" + dimension
}

// Open loads the store at path. A missing file yields an empty store that
// Save will create.
func Open(path string) (*Store, error) {
	s := &Store{Version: FormatVersion, Entries: make(map[string]Entry), path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record store: %w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse record store %s: %w", path, err)
	}
	if s.Entries == nil {
		s.Entries = make(map[string]Entry)
	}
	return s, nil
}

// Put stores rec under source#dimension and reports whether the stored
// content changed. Timestamps alone do not count as a change.
func (s *Store) Put(source string, rec evaluation.Record) bool {
	key := Key(source, rec.Dimension)
	fp := Fingerprint(rec)
	prev, existed := s.Entries[key]
	s.Entries[key] = Entry{
		Source:      source,
		Dimension:   rec.Dimension,
		Fingerprint: fp,
		Record:      rec,
	}
	return !existed || prev.Fingerprint != fp
}

// Get returns the entry stored for source and dimension.
func (s *Store) Get(source, dimension string) (Entry, bool) {
	e, ok := s.Entries[Key(source, dimension)]
	return e, ok
}

// Sorted returns the entries ordered by key.
func (s *Store) Sorted() []Entry {
	keys := make([]string, 0, len(s.Entries))
	for k := range s.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = s.Entries[k]
	}
	return out
}

// Save writes the store back to its path through a temporary file so a
// failed write leaves the previous contents intact.
func (s *Store) Save(now time.Time) error {
	s.Version = FormatVersion
	s.UpdatedAt = now.UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".records-*.json")
	if err != nil {
		return fmt.Errorf("failed to write record store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write record store: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write record store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write record store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write record store: %w", err)
	}
	return nil
}

// Fingerprint hashes a record's content, ignoring when it was evaluated.
func Fingerprint(rec evaluation.Record) string {
	rec.EvaluatedAt = time.Time{}
	data, err := json.Marshal(rec)
	if err != nil {
		// records hold only plain values; fall back to the stable ID
		data = []byte(rec.ID)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
