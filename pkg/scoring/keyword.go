package scoring

import (
	"strings"
	"unicode/utf8"
)

var (
	strongKeywords = []string{
		"comprehensive", "systematic", "evidence-based", "coordinate", "proactive", "preventive", "thorough",
		"detailed", "assess", "appropriate", "document", "communicate", "implement", "analyze",
	}
	developingKeywords = []string{"monitor", "inform", "basic", "review", "identify", "recognize"}
)

// KeywordLevel scores a response deterministically from its length and the number
// of distinct strong and developing indicators it contains. hasCriteria selects
// the richer decision table used for questions with custom rubric criteria.
// Length bounds are exclusive: a level needs more than 50, 150 or 200 runes.
func KeywordLevel(response string, hasCriteria bool) int {
	text := strings.ToLower(response)
	n := utf8.RuneCountInString(text)

	if !hasCriteria {
		switch {
		case n > 200:
			return 3
		case n > 50:
			return 2
		default:
			return 1
		}
	}

	strong := countPresent(text, strongKeywords)
	developing := countPresent(text, developingKeywords)

	switch {
	case n > 200 && strong >= 4:
		return 3
	case n > 150 && (strong >= 2 || developing >= 2):
		return 3
	case n > 50 && (strong >= 1 || developing >= 1):
		return 2
	default:
		return 1
	}
}

func countPresent(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}
