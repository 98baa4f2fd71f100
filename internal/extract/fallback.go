package extract

import (
	"strings"

	"github.com/thebtf/moodline/pkg/models"
)

// WordCount counts whitespace-separated tokens.
func WordCount(rawText string) int {
	return len(strings.Fields(rawText))
}

// Fallback returns the minimal record stored when extraction fails:
// every optional field absent, no insights, and a locally computed word count.
func Fallback(rawText string) *models.ExtractedFields {
	return &models.ExtractedFields{
		Insights:  models.Insights{},
		WordCount: WordCount(rawText),
	}
}
