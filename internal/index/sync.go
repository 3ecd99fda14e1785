package index

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/edusosyal/hapbilgi/internal/checksum"
	"github.com/edusosyal/hapbilgi/internal/kvstore"
	"github.com/edusosyal/hapbilgi/internal/models"
)

// Sync walks the device store and brings the index up to date:
//   - new/changed records under prefix are parsed and upserted
//   - records removed from the store are deleted from the index
//
// Corrupt values are skipped individually; they never fail the sync.
func Sync(db *DB, kv kvstore.Provider, prefix string, logger *slog.Logger) error {
	keys, err := kv.Keys()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	present := make(map[string]struct{}, len(keys))
	var stale []string
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		id := strings.TrimPrefix(key, prefix)
		present[id] = struct{}{}

		value, err := kv.Get(key)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("key", key), slog.String("error", err.Error()))
			continue
		}
		if checksums[id] == checksum.Sum([]byte(value)) {
			continue
		}
		if err := indexValue(db, id, []byte(value)); err != nil {
			logger.Warn("sync: index failed", slog.String("id", id), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("id", id))
		}
	}

	// Remove stale entries.
	for id := range checksums {
		if _, ok := present[id]; !ok {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		if err := db.DeleteTip(id); err != nil {
			logger.Warn("sync: delete failed", slog.String("id", id), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: removed stale", slog.String("id", id))
		}
	}

	return nil
}

// indexValue parses a serialized record and upserts it into the DB.
func indexValue(db *DB, id string, raw []byte) error {
	var tip models.StudyTip
	if err := json.Unmarshal(raw, &tip); err != nil {
		return err
	}
	return db.UpsertTip(TipRow{
		ID:         id,
		Title:      tip.Title,
		Content:    tip.Content,
		Category:   string(tip.Category),
		Difficulty: string(tip.Difficulty),
		Tags:       tip.Tags,
		Checksum:   checksum.Sum(raw),
		CreatedAt:  tip.CreatedAt,
	})
}
