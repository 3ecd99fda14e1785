// Package models defines the domain types for Hap Bilgi.
package models

import "time"

// Category is the coarse subject classification of a study tip.
type Category string

// Category values. Inferred from the question/answer text, never
// user-supplied.
const (
	CategoryMath            Category = "math"
	CategoryPhysics         Category = "physics"
	CategoryChemistry       Category = "chemistry"
	CategoryBiology         Category = "biology"
	CategoryHistory         Category = "history"
	CategoryGeography       Category = "geography"
	CategoryNativeLanguage  Category = "native_language"
	CategoryForeignLanguage Category = "foreign_language"
	CategoryGeneral         Category = "general"
)

// Difficulty is the inferred difficulty bucket of a study tip.
type Difficulty string

// Difficulty values.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// StudyTip is a short auto-generated study summary derived from an AI
// chat question/answer pair. Records are immutable once created; the
// only destructive operation is a full reset of the local store.
type StudyTip struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	// Tags and Keywords hold the same value; both fields are populated
	// for compatibility with existing consumers.
	Tags     []string `json:"tags"`
	Keywords []string `json:"keywords"`
	Likes    int      `json:"likes"`
	Saves    int      `json:"saves"`
	Views    int      `json:"views"`
	// IsLocal distinguishes device-cached records from backend-confirmed
	// ones.
	IsLocal   bool      `json:"isLocal"`
	CreatedAt time.Time `json:"createdAt"`
	// Verbatim source strings, retained for traceability.
	OriginalQuestion   string `json:"originalQuestion"`
	OriginalAIResponse string `json:"originalAIResponse"`
}

// TipMetadata is a lightweight representation returned by index listings.
type TipMetadata struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}
