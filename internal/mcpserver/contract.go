package mcpserver

// TipFormatContract describes the study tip record shape that LLM
// consumers see when reading or creating tips.
const TipFormatContract = `# Hap Bilgi Tip Format Contract

Every study tip produced from an AI chat exchange follows this shape.

## Record

` + "```" + `json
{
  "id": "local_1756450000000",
  "title": "İntegral hesaplama nasıl yapılır,...",
  "content": "Parçalı integral şöyle alınır: önce u seç...",
  "category": "math",
  "difficulty": "medium",
  "tags": ["#YKS", "#Matematik", "#Kalkülüs", "#Orta"],
  "isLocal": true,
  "createdAt": "2025-08-29T10:00:00Z"
}
` + "```" + `

## Rules

1. **Tips are derived, not authored.** The ` + "`" + `create_tip` + "`" + ` tool takes the raw
   question and AI answer; title, content, category, difficulty, and tags
   are computed. You cannot set them directly.
2. **Title** is the first five words of the question, with a trailing
   ` + "`" + `...` + "`" + ` when the question runs past 30 characters.
3. **Content** is the first 150 characters of the answer, ellipsized when
   longer.
4. **Tags** carry at most four entries, ordered exam type, subject,
   topics, difficulty. Pass an explicit ` + "`" + `tags` + "`" + ` array to bypass the
   classifier; it is used verbatim.
5. **Categories**: math, physics, chemistry, biology, history, geography,
   native_language, foreign_language, general.
6. **Difficulties**: easy, medium, hard.
7. **Ids** are assigned locally (` + "`" + `local_<epochMillis>` + "`" + `) and are stable:
   use the id from ` + "`" + `create_tip` + "`" + ` or a listing when calling ` + "`" + `get_tip` + "`" + `.
8. **Language**: question and answer text is typically Turkish; matching
   is Turkish-case-insensitive (İ/ı handled), so casing never matters.
`
