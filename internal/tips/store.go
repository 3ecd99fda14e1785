package tips

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/edusosyal/hapbilgi/internal/apperr"
	"github.com/edusosyal/hapbilgi/internal/kvstore"
	"github.com/edusosyal/hapbilgi/internal/models"
)

// KeyPrefix namespaces study-tip records inside the shared device store.
const KeyPrefix = "local_hap_bilgi_"

// sweepSubstrings drives ClearAll. Reset deliberately matches on
// substring rather than exact prefix so that records written under
// legacy key spellings are removed too.
var sweepSubstrings = []string{"local_hap_bilgi", "hap_bilgi", "hapBilgi"}

// Store persists study-tip records in a key-value device store, one key
// per record. Records are immutable once written; the only mutation is
// the full reset.
type Store struct {
	kv     kvstore.Provider
	logger *slog.Logger
}

// NewStore creates a Store over the given key-value provider.
func NewStore(kv kvstore.Provider, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Key returns the store key for a record id.
func Key(id string) string {
	return KeyPrefix + id
}

// Put serializes and writes a record. Ids are unique so an existing key
// is only overwritten after an id collision upstream.
func (s *Store) Put(tip models.StudyTip) error {
	data, err := json.Marshal(tip)
	if err != nil {
		return fmt.Errorf("tips: marshal %s: %w", tip.ID, err)
	}
	if err := s.kv.Set(Key(tip.ID), string(data)); err != nil {
		return fmt.Errorf("tips: put %s: %w", tip.ID, err)
	}
	return nil
}

// Get reads a single record by id.
func (s *Store) Get(id string) (*models.StudyTip, error) {
	value, err := s.kv.Get(Key(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	var tip models.StudyTip
	if err := json.Unmarshal([]byte(value), &tip); err != nil {
		return nil, fmt.Errorf("tips: corrupt record %s: %w", id, err)
	}
	return &tip, nil
}

// ListAll returns every readable record under the namespace, newest
// first. Corrupt values are skipped individually rather than failing the
// whole listing; a store with no matching keys yields an empty slice.
func (s *Store) ListAll() ([]models.StudyTip, error) {
	keys, err := s.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("tips: list keys: %w", err)
	}

	var tipKeys []string
	for _, key := range keys {
		if strings.HasPrefix(key, KeyPrefix) {
			tipKeys = append(tipKeys, key)
		}
	}
	if len(tipKeys) == 0 {
		return []models.StudyTip{}, nil
	}

	values, err := s.kv.MultiGet(tipKeys)
	if err != nil {
		return nil, fmt.Errorf("tips: bulk read: %w", err)
	}

	out := make([]models.StudyTip, 0, len(values))
	for key, value := range values {
		var tip models.StudyTip
		if err := json.Unmarshal([]byte(value), &tip); err != nil {
			s.logger.Warn("tips: skipping corrupt record",
				slog.String("key", key),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, tip)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// matchesSweep reports whether a key is removed by ClearAll.
func matchesSweep(key string) bool {
	for _, sub := range sweepSubstrings {
		if strings.Contains(key, sub) {
			return true
		}
	}
	return false
}

// ClearAll removes every key matching the sweep substrings in one batch.
// Destructive and non-reversible; callers gate it behind an explicit
// operator action.
func (s *Store) ClearAll() error {
	keys, err := s.kv.Keys()
	if err != nil {
		return fmt.Errorf("tips: list keys for reset: %w", err)
	}
	var doomed []string
	for _, key := range keys {
		if matchesSweep(key) {
			doomed = append(doomed, key)
		}
	}
	if len(doomed) == 0 {
		return nil
	}
	if err := s.kv.MultiRemove(doomed); err != nil {
		return fmt.Errorf("tips: reset: %w", err)
	}
	s.logger.Info("tips: reset removed records", slog.Int("count", len(doomed)))
	return nil
}
