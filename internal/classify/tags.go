package classify

// MaxTags caps the synthesized tag list.
const MaxTags = 4

// SynthesizeTags combines a classification into one ordered tag list:
// exam type, subject, topics, then the difficulty tag. Duplicates are
// dropped keeping the first occurrence, and the list is truncated to
// MaxTags after deduplication, so later entries (the difficulty tag
// first) are the ones sacrificed at capacity.
func SynthesizeTags(res Result) []string {
	raw := make([]string, 0, 3+len(res.TopicTags))
	if res.ExamType != "" {
		raw = append(raw, res.ExamType)
	}
	if res.MainSubject != "" {
		raw = append(raw, res.MainSubject)
	}
	raw = append(raw, res.TopicTags...)
	raw = append(raw, res.DifficultyLevel)

	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}
