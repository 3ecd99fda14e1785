// Package classify derives subject, exam-type, topic, and difficulty
// signals from free-form question/answer text using curated keyword
// tables. All functions are pure and never fail: unknown text degrades
// to the general category and medium difficulty.
package classify

import (
	"strings"

	"github.com/edusosyal/hapbilgi/internal/models"
)

// maxTopicTags caps the number of topic refinements per classification.
const maxTopicTags = 2

// Result holds the output of analysing a question/answer pair for the
// tag pipeline.
type Result struct {
	MainSubject     string   // subject tag, empty when no subject matched
	ExamType        string   // exam-type tag, empty when none matched
	TopicTags       []string // up to maxTopicTags refinements
	DifficultyLevel string   // TagEasy, TagMedium, or TagHard
}

// turkishFolder lowers Turkish dotted/dotless capitals before the generic
// case fold so that keywords match text like "İntegral" or "ISI".
var turkishFolder = strings.NewReplacer("İ", "i", "I", "ı")

// Fold case-folds text for keyword matching, handling the Turkish İ/ı
// pair that strings.ToLower alone gets wrong.
func Fold(text string) string {
	return strings.ToLower(turkishFolder.Replace(text))
}

// Analyze runs the tag-pipeline detectors over text. The text is
// case-folded once; callers typically pass the question concatenated
// with the AI answer.
func Analyze(text string) Result {
	folded := Fold(text)

	res := Result{
		DifficultyLevel: detectDifficultyTag(folded),
	}

	for _, subj := range subjectRules {
		if !containsAny(folded, subj.keywords) {
			continue
		}
		res.MainSubject = subj.tag
		for _, topic := range subj.topics {
			if len(res.TopicTags) >= maxTopicTags {
				break
			}
			if containsAny(folded, topic.keywords) {
				res.TopicTags = append(res.TopicTags, topic.tag)
			}
		}
		break
	}

	for _, exam := range examRules {
		if containsAny(folded, exam.keywords) {
			res.ExamType = exam.tag
			break
		}
	}

	return res
}

// detectDifficultyTag checks easy keywords before hard ones; text that
// carries both signals is classified easy.
func detectDifficultyTag(folded string) string {
	if containsAny(folded, easyTagKeywords) {
		return TagEasy
	}
	if containsAny(folded, hardTagKeywords) {
		return TagHard
	}
	return TagMedium
}

// DetectCategory returns the record-level category for text, falling
// back to the general category. This detector is intentionally separate
// from the subject tables used by Analyze.
func DetectCategory(text string) models.Category {
	folded := Fold(text)
	for _, rule := range categoryRules {
		if containsAny(folded, rule.keywords) {
			return rule.category
		}
	}
	return models.CategoryGeneral
}

// DetectDifficulty returns the record-level difficulty for text,
// defaulting to medium when no signal is found.
func DetectDifficulty(text string) models.Difficulty {
	folded := Fold(text)
	if containsAny(folded, easyKeywords) {
		return models.DifficultyEasy
	}
	if containsAny(folded, hardKeywords) {
		return models.DifficultyHard
	}
	return models.DifficultyMedium
}

func containsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
