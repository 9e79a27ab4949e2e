package planner

import (
	"encoding/json"
	"strings"
)

// Candidate is a JSON object recovered from model text, before any schema
// validation.
type Candidate map[string]any

// Extract recovers a JSON object from raw model output. It tries a direct
// parse first, then strips markdown fences and narrows the text to the
// substring between the first '{' and the last '}'. A false return means no
// object could be recovered; the orchestrator treats that as a retryable
// parse failure, not a fatal error.
func Extract(raw string) (Candidate, bool) {
	trimmed := strings.TrimSpace(raw)
	if c, ok := tryParse(trimmed); ok {
		return c, true
	}

	cleaned := stripFences(trimmed)
	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first == -1 || last == -1 || last < first {
		return nil, false
	}
	return tryParse(cleaned[first : last+1])
}

func tryParse(s string) (Candidate, bool) {
	var c Candidate
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return nil, false
	}
	if c == nil {
		return nil, false
	}
	return c, true
}

// stripFences removes ```json / ``` markers anywhere in the text so prose
// around a fenced block does not defeat the brace narrowing.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
