package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripMarkdownFences removes a surrounding markdown code fence from a model
// response. Vision models are told to return bare JSON but frequently wrap it
// in ```json ... ``` anyway.
func StripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// DecodePayload strips fences and decodes the response into a generic object.
// It fails only when no JSON object can be recovered at all; shape problems
// inside the object are the normalizer's job.
func DecodePayload(raw string) (map[string]any, error) {
	cleaned := StripMarkdownFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty payload")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(cleaned), &m); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return m, nil
}
