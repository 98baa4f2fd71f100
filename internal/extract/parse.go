package extract

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/thebtf/moodline/pkg/models"
)

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:json)?[ \\t]*\\n?")
	trailingFence = regexp.MustCompile("\\n?```\\s*$")
)

// ErrNotObject is returned when the completion is valid JSON but not an object.
var ErrNotObject = errors.New("completion is not a JSON object")

// wireFields mirrors models.ExtractedFields but keeps word_count optional so a
// missing value can be told apart from zero. Numbers decode as float64 so
// that 4.0 is accepted as 4.
type wireFields struct {
	Mood          *float64         `json:"mood"`
	Energy        *string          `json:"energy"`
	Doing         *string          `json:"doing"`
	Intention     *string          `json:"intention"`
	DoingCategory *string          `json:"doing_category"`
	Location      *string          `json:"location"`
	SocialContext *string          `json:"social_context"`
	Insights      *models.Insights `json:"insights"`
	WordCount     *float64         `json:"word_count"`
}

// StripFences removes an optional markdown code fence around the payload.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = leadingFence.ReplaceAllString(s, "")
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Parse decodes a completion into extracted fields. Unknown keys are ignored
// and missing keys stay absent. Field values are not range-checked.
// If the completion omits word_count, it is computed from rawText.
func Parse(completion, rawText string) (*models.ExtractedFields, error) {
	payload := StripFences(completion)
	if !strings.HasPrefix(payload, "{") {
		if json.Valid([]byte(payload)) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("decode completion: invalid JSON")
	}

	var w wireFields
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return nil, fmt.Errorf("decode completion: %w", err)
	}

	mood, err := wholeNumber("mood", w.Mood)
	if err != nil {
		return nil, err
	}
	wordCount, err := wholeNumber("word_count", w.WordCount)
	if err != nil {
		return nil, err
	}

	fields := &models.ExtractedFields{
		Mood:          mood,
		Energy:        w.Energy,
		Doing:         w.Doing,
		Intention:     w.Intention,
		DoingCategory: w.DoingCategory,
		Location:      w.Location,
		SocialContext: w.SocialContext,
	}
	if w.Insights != nil {
		fields.Insights = *w.Insights
	}
	if wordCount != nil {
		fields.WordCount = *wordCount
	} else {
		fields.WordCount = WordCount(rawText)
	}
	return fields, nil
}

// wholeNumber converts a decoded JSON number to an int. A fractional value
// is a decode error.
func wholeNumber(key string, v *float64) (*int, error) {
	if v == nil {
		return nil, nil
	}
	if math.Trunc(*v) != *v || math.IsInf(*v, 0) || math.Abs(*v) > math.MaxInt32 {
		return nil, fmt.Errorf("decode completion: %s %v is not a whole number", key, *v)
	}
	n := int(*v)
	return &n, nil
}
