package tips

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/edusosyal/hapbilgi/internal/classify"
	"github.com/edusosyal/hapbilgi/internal/models"
)

const (
	// titleWordCount is how many leading question words form the title.
	titleWordCount = 5
	// titleEllipsisAt: questions longer than this (measured on the
	// original string, not the truncated title) get a trailing ellipsis.
	titleEllipsisAt = 30
	// contentMaxRunes caps the stored answer excerpt.
	contentMaxRunes = 150
)

// idGen issues local record ids. Ids keep the local_<epochMillis> shape;
// a sequence suffix is appended only when two creations land on the same
// millisecond.
type idGen struct {
	mu     sync.Mutex
	last   int64
	serial int
}

var ids idGen

func (g *idGen) next(now time.Time) string {
	millis := now.UnixMilli()
	g.mu.Lock()
	defer g.mu.Unlock()
	if millis == g.last {
		g.serial++
		return fmt.Sprintf("local_%d_%d", millis, g.serial)
	}
	g.last = millis
	g.serial = 0
	return fmt.Sprintf("local_%d", millis)
}

// buildTip assembles a StudyTip record from a question/answer pair and a
// synthesized tag list. Category and difficulty come from the simple
// record-level detectors, not from the tag pipeline.
func buildTip(question, aiResponse string, tags []string, now time.Time) models.StudyTip {
	combined := question + " " + aiResponse

	keywords := make([]string, len(tags))
	copy(keywords, tags)

	return models.StudyTip{
		ID:                 ids.next(now),
		Title:              buildTitle(question),
		Content:            buildContent(aiResponse),
		Category:           classify.DetectCategory(combined),
		Difficulty:         classify.DetectDifficulty(combined),
		Tags:               tags,
		Keywords:           keywords,
		IsLocal:            true,
		CreatedAt:          now,
		OriginalQuestion:   question,
		OriginalAIResponse: aiResponse,
	}
}

// buildTitle joins the first five whitespace-delimited question words.
// The ellipsis decision is made on the original question length.
func buildTitle(question string) string {
	words := strings.Fields(question)
	if len(words) > titleWordCount {
		words = words[:titleWordCount]
	}
	title := strings.Join(words, " ")
	if len([]rune(question)) > titleEllipsisAt {
		title += "..."
	}
	return title
}

// buildContent keeps the first contentMaxRunes characters of the answer.
func buildContent(aiResponse string) string {
	runes := []rune(aiResponse)
	if len(runes) <= contentMaxRunes {
		return aiResponse
	}
	return string(runes[:contentMaxRunes]) + "..."
}
