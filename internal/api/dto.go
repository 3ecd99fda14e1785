package api

import (
	"time"

	"github.com/edusosyal/hapbilgi/internal/models"
)

// CreateTipRequest is the request body for generating a tip from an AI
// chat exchange. Tags, when present, bypass the classifier and are used
// verbatim.
type CreateTipRequest struct {
	Question   string   `json:"question"`
	AIResponse string   `json:"ai_response"`
	Tags       []string `json:"tags,omitempty"`
}

// TipDetail is the full tip response type (aliased from the domain layer).
type TipDetail = models.StudyTip

// TipListItem is a lightweight item in an indexed list response.
type TipListItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}

// TipListResponse wraps paginated indexed listings.
type TipListResponse struct {
	Tips  []TipListItem `json:"tips"`
	Total int           `json:"total"`
}

// SearchResult is a single local search hit.
type SearchResult struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
