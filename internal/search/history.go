package search

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/renameio/v2"

	"github.com/donaldgifford/offer-catalog/internal/catalog"
	"github.com/donaldgifford/offer-catalog/internal/metrics"
	"github.com/donaldgifford/offer-catalog/pkg/logger"
	domain "github.com/donaldgifford/offer-catalog/pkg/types"
)

const (
	// DefaultMaxEntries is the history bound used when none is configured.
	DefaultMaxEntries = 10

	historyFileName = "searchHistory.json"
	historyFileMode = 0o600
)

// HistoryStore keeps the most-recent-first list of past searches, without
// duplicates, persisted to a single JSON file. Safe for concurrent use.
// A process holds one store; it owns the offers_history_entries gauge.
type HistoryStore struct {
	path       string
	maxEntries int
	logger     *slog.Logger

	mu      sync.Mutex
	entries []domain.SearchHistoryEntry
	loaded  bool
}

// HistoryOption configures the HistoryStore.
type HistoryOption func(*HistoryStore)

// WithMaxEntries lowers the history bound. Values below 1 are ignored and
// values above DefaultMaxEntries are capped.
func WithMaxEntries(n int) HistoryOption {
	return func(s *HistoryStore) {
		if n > 0 {
			s.maxEntries = min(n, DefaultMaxEntries)
		}
	}
}

// WithHistoryLogger sets the logger.
func WithHistoryLogger(l *slog.Logger) HistoryOption {
	return func(s *HistoryStore) {
		s.logger = logger.Component(l, "history")
	}
}

// NewHistoryStore creates a store persisting to path. Nothing is read until
// the first call.
func NewHistoryStore(path string, opts ...HistoryOption) *HistoryStore {
	s := &HistoryStore{
		path:       path,
		maxEntries: DefaultMaxEntries,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultHistoryPath returns the history file under the user cache directory.
func DefaultHistoryPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(dir, "offer-catalog", historyFileName), nil
}

// Path returns the backing file.
func (s *HistoryStore) Path() string {
	return s.path
}

// Add moves entry to the front, removing an equal older entry and trimming
// the oldest entries past the bound. Entries are compared on the fields
// their kind uses. Persisting is best effort: a failed
// write is logged and the updated history is still returned.
func (s *HistoryStore) Add(entry domain.SearchHistoryEntry) []domain.SearchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.currentLocked()
	entry = entry.Normalized()

	next := make([]domain.SearchHistoryEntry, 0, len(current)+1)
	next = append(next, entry)
	for _, e := range current {
		if e.Normalized() != entry {
			next = append(next, e)
		}
	}
	if len(next) > s.maxEntries {
		next = next[:s.maxEntries]
	}

	if err := s.saveLocked(next); err != nil {
		metrics.HistoryPersistFailuresTotal.WithLabelValues("save").Inc()
		s.logger.Warn("saving search history", "path", s.path, "err", err)
		s.setLocked(next)
	}

	return slices.Clone(next)
}

// Entries returns the current history, loading it from disk on first use.
func (s *HistoryStore) Entries() []domain.SearchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.currentLocked())
}

// Load reads the history file. It reports false when the file is missing,
// unreadable or not a JSON array; elements that fail to decode are skipped.
func (s *HistoryStore) Load() ([]domain.SearchHistoryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, ok := s.loadLocked()
	if !ok {
		return nil, false
	}
	s.setLocked(entries)
	return slices.Clone(entries), true
}

// Save replaces the history file with entries.
func (s *HistoryStore) Save(entries []domain.SearchHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(entries)
}

// TrySave is Save for callers that cannot act on a failure. It reports
// whether the write succeeded.
func (s *HistoryStore) TrySave(entries []domain.SearchHistoryEntry) bool {
	if err := s.Save(entries); err != nil {
		metrics.HistoryPersistFailuresTotal.WithLabelValues("save").Inc()
		s.logger.Warn("saving search history", "path", s.path, "err", err)
		return false
	}
	return true
}

// Clear empties the history and removes the file.
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing search history: %w", err)
	}
	s.setLocked(nil)
	return nil
}

func (s *HistoryStore) currentLocked() []domain.SearchHistoryEntry {
	if !s.loaded {
		entries, _ := s.loadLocked()
		s.setLocked(entries)
	}
	return s.entries
}

func (s *HistoryStore) setLocked(entries []domain.SearchHistoryEntry) {
	s.entries = slices.Clone(entries)
	s.loaded = true
	metrics.HistoryEntries.Set(float64(len(s.entries)))
}

func (s *HistoryStore) loadLocked() ([]domain.SearchHistoryEntry, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			metrics.HistoryPersistFailuresTotal.WithLabelValues("load").Inc()
			s.logger.Warn("reading search history", "path", s.path, "err", err)
		}
		return nil, false
	}

	n, err := catalog.ParseNode(data)
	if err != nil {
		metrics.HistoryPersistFailuresTotal.WithLabelValues("load").Inc()
		s.logger.Warn("parsing search history", "path", s.path, "err", err)
		return nil, false
	}

	if _, isArray := n.Raw().([]any); !isArray {
		metrics.HistoryPersistFailuresTotal.WithLabelValues("load").Inc()
		s.logger.Warn("search history is not a JSON array", "path", s.path)
		return nil, false
	}

	elems := n.Array()
	entries := make([]domain.SearchHistoryEntry, 0, len(elems))
	for _, e := range elems {
		entry, ok := entryFromNode(e)
		if !ok {
			s.logger.Debug("dropping undecodable history entry", "path", s.path)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, true
}

func (s *HistoryStore) saveLocked(entries []domain.SearchHistoryEntry) error {
	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toJSON(e))
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding search history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	if err := renameio.WriteFile(s.path, data, historyFileMode); err != nil {
		return fmt.Errorf("writing search history: %w", err)
	}

	s.setLocked(entries)
	return nil
}
