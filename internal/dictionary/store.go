package dictionary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ArgumentErrorPrefix marks provider error strings returned in place of a
// translation. Values starting with it are never stored.
const ArgumentErrorPrefix = "ArgumentException:"

// ErrUnreadable is returned by Load when the backing file is missing,
// unreadable or not a valid dictionary document.
var ErrUnreadable = errors.New("dictionary file unreadable")

// Entries maps a language pair key to source text and its translation
type Entries map[string]map[string]string

// LangKey builds the language pair key used as the top-level map key
func LangKey(fromLang, toLang string) string {
	return fromLang + "_" + toLang
}

// Store holds one dictionary tier in memory
type Store struct {
	path string

	mu      sync.RWMutex
	entries Entries
	open    bool
	pending int
}

// New creates an empty, closed store bound to path
func New(path string) *Store {
	return &Store{
		path:    filepath.Clean(path),
		entries: make(Entries),
	}
}

// Load reads the dictionary at path. The returned store is always usable:
// when the file cannot be read or parsed it is empty and closed, and the
// error wraps ErrUnreadable.
func Load(path string) (*Store, error) {
	s := New(path)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrUnreadable, s.path, err)
	}

	var entries Entries
	if err := json.Unmarshal(data, &entries); err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrUnreadable, s.path, err)
	}
	if entries == nil {
		return s, fmt.Errorf("%w: %s: not a JSON object", ErrUnreadable, s.path)
	}

	for key, texts := range entries {
		if texts == nil {
			entries[key] = make(map[string]string)
		}
	}

	s.entries = entries
	s.open = true
	return s, nil
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// IsOpen reports whether the backing file was parsed successfully
func (s *Store) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// Pending returns the number of entries added since the last flush
func (s *Store) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

// Dirty reports whether a flush would write the file
func (s *Store) Dirty() bool {
	return s.Pending() > 0
}

// Len returns the total number of entries across all language pairs
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, texts := range s.entries {
		n += len(texts)
	}
	return n
}

// Lookup returns the translation of text for langKey. A closed store never
// reports a hit.
func (s *Store) Lookup(langKey, text string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return "", false
	}
	texts, ok := s.entries[langKey]
	if !ok {
		return "", false
	}
	translation, ok := texts[text]
	return translation, ok
}

// Insert stores translation for text under langKey, overwriting any previous
// value. A text new to langKey counts as a pending write even when the
// translation is then dropped for carrying ArgumentErrorPrefix.
func (s *Store) Insert(langKey, text, translation string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	texts, ok := s.entries[langKey]
	if !ok {
		texts = make(map[string]string)
		s.entries[langKey] = texts
	}
	if _, exists := texts[text]; !exists {
		s.pending++
	}
	if strings.HasPrefix(translation, ArgumentErrorPrefix) {
		return
	}
	texts[text] = translation
}

// Snapshot returns a deep copy of the entries
func (s *Store) Snapshot() Entries {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(Entries, len(s.entries))
	for key, texts := range s.entries {
		cp := make(map[string]string, len(texts))
		for text, translation := range texts {
			cp[text] = translation
		}
		out[key] = cp
	}
	return out
}

// Flush rewrites the backing file when there are pending writes and resets
// the counter afterwards. It reports whether the file was written.
func (s *Store) Flush() (bool, error) {
	if !s.Dirty() {
		return false, nil
	}
	if err := s.WriteSnapshot(); err != nil {
		return false, err
	}
	s.MarkClean()
	return true, nil
}

// WriteSnapshot serializes all entries to the backing file, replacing its
// content. The pending counter is left untouched.
func (s *Store) WriteSnapshot() error {
	s.mu.RLock()
	data, err := encode(s.entries)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode dictionary: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".dictionary-*")
	if err != nil {
		return fmt.Errorf("failed to write dictionary %s: %w", s.path, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write dictionary %s: %w", s.path, err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write dictionary %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write dictionary %s: %w", s.path, err)
	}
	return nil
}

// MarkClean resets the pending write counter
func (s *Store) MarkClean() {
	s.mu.Lock()
	s.pending = 0
	s.mu.Unlock()
}

// encode renders entries the way the bootstrap step writes empty files:
// four-space indentation, no HTML escaping.
func encode(entries Entries) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
