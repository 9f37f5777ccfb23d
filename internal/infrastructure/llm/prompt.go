package llm

import (
	"strings"
)

// Жесткие границы промпта ре-ранкера, чтобы не выходить за контекст модели.
const (
	maxCandidatesPerCategory = 20
	maxTitleLen              = 120
	maxTagsPerItem           = 6
)

// extractJSON достает JSON-объект из ответа модели: сначала из блока ```json,
// иначе от первой '{' до последней '}'.
func extractJSON(reply string) string {
	reply = strings.TrimSpace(reply)

	if idx := strings.Index(reply, "```json"); idx >= 0 {
		rest := reply[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start >= 0 && end > start {
		return reply[start : end+1]
	}

	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
