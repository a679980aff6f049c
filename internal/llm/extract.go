package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers a JSON document from model output that wraps it in
// a markdown fence or surrounding prose. It strips ```json fences, then
// keeps the span from the first '{' or '[' to the last matching closer.
// The second return is false when no candidate span exists.
func ExtractJSON(text string) (json.RawMessage, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	s = strings.TrimSpace(s)

	openBrace := strings.IndexByte(s, '{')
	openBracket := strings.IndexByte(s, '[')

	start, closer := -1, byte(0)
	switch {
	case openBrace >= 0 && (openBracket < 0 || openBrace < openBracket):
		start, closer = openBrace, '}'
	case openBracket >= 0:
		start, closer = openBracket, ']'
	default:
		return nil, false
	}

	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return nil, false
	}
	return json.RawMessage(s[start : end+1]), true
}
