// Package tips implements the Hap Bilgi core: building study-tip
// records from AI chat question/answer pairs and persisting them
// offline-first in the local device store.
package tips

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edusosyal/hapbilgi/internal/apperr"
	"github.com/edusosyal/hapbilgi/internal/checksum"
	"github.com/edusosyal/hapbilgi/internal/classify"
	"github.com/edusosyal/hapbilgi/internal/index"
	"github.com/edusosyal/hapbilgi/internal/models"
)

// defaultRecommendLimit is used when callers pass a non-positive limit.
const defaultRecommendLimit = 10

// EventFunc is called after a successful mutation. kind is "created" or
// "reset"; id is empty for reset events.
type EventFunc func(kind, id string)

// Service orchestrates classification, record building, local storage,
// and the search index. All local operations resolve in bounded time;
// nothing on this path touches the network.
type Service struct {
	store    *Store
	idx      index.TipIndex
	logger   *slog.Logger
	onChange EventFunc
}

// NewService creates the façade service. idx may be nil when no search
// index is configured.
func NewService(store *Store, idx index.TipIndex, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, idx: idx, logger: logger}
}

// OnChange registers a mutation callback (used for SSE fan-out).
func (s *Service) OnChange(cb EventFunc) {
	s.onChange = cb
}

// CreateFromQuestion builds a study tip from a question/answer pair and
// persists it. When aiTags is non-empty it is used verbatim and the
// classifier-driven synthesis is bypassed. Persistence is best-effort:
// a failing device store is logged and the built record is still
// returned, matching the offline-first contract.
func (s *Service) CreateFromQuestion(_ context.Context, question, aiResponse string, aiTags []string) (*models.StudyTip, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(aiResponse) == "" {
		return nil, fmt.Errorf("%w: question and answer are required", apperr.ErrInvalidTip)
	}

	tags := aiTags
	if len(tags) == 0 {
		tags = classify.SynthesizeTags(classify.Analyze(question + " " + aiResponse))
	}

	tip := buildTip(question, aiResponse, tags, time.Now())

	if err := s.store.Put(tip); err != nil {
		s.logger.Warn("tips: save failed, keeping record in memory",
			slog.String("id", tip.ID),
			slog.String("error", err.Error()))
	} else if s.idx != nil {
		if err := s.indexTip(tip); err != nil {
			s.logger.Warn("tips: index failed",
				slog.String("id", tip.ID),
				slog.String("error", err.Error()))
		}
	}

	if s.onChange != nil {
		s.onChange("created", tip.ID)
	}

	s.logger.Info("tips: created",
		slog.String("id", tip.ID),
		slog.String("category", string(tip.Category)),
		slog.Int("tags", len(tip.Tags)))
	return &tip, nil
}

// ListRecommended returns the newest records, at most limit of them. A
// failing or empty store degrades to an empty slice; listing is never an
// error surface for callers.
func (s *Service) ListRecommended(_ context.Context, limit int) []models.StudyTip {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	all, err := s.store.ListAll()
	if err != nil {
		s.logger.Warn("tips: list failed, returning empty", slog.String("error", err.Error()))
		return []models.StudyTip{}
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Get returns a single record by id.
func (s *Service) Get(_ context.Context, id string) (*models.StudyTip, error) {
	return s.store.Get(id)
}

// ResetAll removes every record in the tip namespace and purges the
// index. Unlike listing, reset errors are surfaced: the caller asked for
// a destructive action and deserves to know it did not happen.
func (s *Service) ResetAll(_ context.Context) error {
	if err := s.store.ClearAll(); err != nil {
		return err
	}
	if s.idx != nil {
		if err := s.idx.DeleteAll(); err != nil {
			s.logger.Warn("tips: index purge failed", slog.String("error", err.Error()))
		}
	}
	if s.onChange != nil {
		s.onChange("reset", "")
	}
	return nil
}

// indexTip mirrors a freshly written record into the search index. The
// checksum is computed over the same serialization Put writes, so the
// background sync recognises the entry as current.
func (s *Service) indexTip(tip models.StudyTip) error {
	raw, err := json.Marshal(tip)
	if err != nil {
		return err
	}
	return s.idx.UpsertTip(index.TipRow{
		ID:         tip.ID,
		Title:      tip.Title,
		Content:    tip.Content,
		Category:   string(tip.Category),
		Difficulty: string(tip.Difficulty),
		Tags:       tip.Tags,
		Checksum:   checksum.Sum(raw),
		CreatedAt:  tip.CreatedAt,
	})
}
