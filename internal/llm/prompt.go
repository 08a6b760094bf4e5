package llm

import (
	"encoding/json"
	"strings"
)

// BuildSystemPrompt composes the system message for a document kind with
// strict-but-practical formatting rules.
func BuildSystemPrompt(kind DocumentKind, schema map[string]any) string {
	var role string
	switch kind {
	case KindContract:
		role = "You are a contract parser. Extract the supplier, the agreed services with their unit prices, and the contract terms."
	default:
		role = "You are an invoice parser. Extract the supplier, the billed line items, and the invoice totals."
	}

	parts := []string{
		role,
		"Return ONLY JSON that matches the JSON Schema provided.",
		"Use ISO-8601 dates (YYYY-MM-DD).",
		"Amounts are plain numbers without currency symbols or thousands separators.",
		"Every line item needs a description; use quantity 1 when no quantity is shown.",
		"Never output null. If a field is not present, omit it.",
		"JSON Schema:\n" + mustJSON(schema),
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the filename hint and, when no image is attached,
// the pre-extracted document text.
func BuildUserPrompt(req ExtractRequest, imageAttached bool) string {
	var b strings.Builder
	if name := strings.TrimSpace(req.Filename); name != "" {
		b.WriteString("Filename: ")
		b.WriteString(name)
		b.WriteString("\n")
	}

	if imageAttached {
		b.WriteString("\nAn image of the document is attached. Read the fields from it.\n")
		return b.String()
	}

	text := strings.TrimSpace(req.Text)
	b.WriteString("\nDocument text (first ~6k chars):\n")
	if len(text) > 6000 {
		b.WriteString(text[:6000])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
