// Package extract turns free-text check-ins into structured fields via a language model.
package extract

import (
	"strings"
)

// CheckInQuestion is the question the user is sent and answers by text.
const CheckInQuestion = "Quick check-in: Mood (1-5), Energy (L/M/H), Doing, Next hour?"

const promptHeader = "You are analyzing a mood check-in SMS. Extract structured data from the following message.\n\n"

const promptContract = `Extract and return a JSON object with:
{
  "mood": <number 1-5, or null if not mentioned>,
  "energy": <"L", "M", "H", or null if not mentioned>,
  "doing": <what they're currently doing, or null>,
  "intention": <what they plan to do next, or null>,
  "doing_category": <one of: "work", "social", "rest", "exercise", "chores", "transit", or null>,
  "location": <where they are, or null>,
  "social_context": <who they're with, or null>,
  "insights": {
    "notable_change": <if mood/energy seems significantly different from normal, note it>,
    "energy_mood_mismatch": <if energy and mood seem misaligned, note it>,
    "observation": <any other brief observation about this entry>
  },
  "word_count": <number of words in the raw text>
}

Be concise in insights. Only include insight fields if there's something notable. Return ONLY the JSON object, no markdown or explanation.`

// BuildPrompt builds the extraction prompt for a raw check-in.
// The raw text is embedded verbatim.
func BuildPrompt(rawText string) string {
	var sb strings.Builder

	sb.WriteString(promptHeader)
	sb.WriteString("The user was asked: \"")
	sb.WriteString(CheckInQuestion)
	sb.WriteString("\"\n\n")
	sb.WriteString("Their response: \"")
	sb.WriteString(rawText)
	sb.WriteString("\"\n\n")
	sb.WriteString(promptContract)

	return sb.String()
}
