// Package cas implements the valuation store.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/zerr"
)

// json sorts map keys, so the store file diffs cleanly between runs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store implements ports.ValuationStore using a flat JSON file keyed by book
// and instrument.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]map[string]domain.Valuation
}

// NewStore creates a new ValuationStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]map[string]domain.Valuation),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read valuation store"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal valuation store"), "path", s.path)
	}

	return nil
}

// save writes the cache to disk. The caller must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal valuation store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for valuation store"), "dir", dir)
	}

	tmp := s.path + ".tmp"
	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write valuation store"), "path", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to replace valuation store"), "path", s.path)
	}

	return nil
}

// Get retrieves the last valuation of an instrument in a book.
func (s *Store) Get(book, instrument string) (*domain.Valuation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.cache[book][instrument]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

// Put stores the valuation and persists the store.
func (s *Store) Put(book string, v domain.Valuation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache[book] == nil {
		s.cache[book] = make(map[string]domain.Valuation)
	}
	s.cache[book][v.Instrument] = v

	return s.save()
}
