package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildInvoiceJSONSchema returns the JSON Schema (draft 2020-12 subset) for an
// extracted invoice payload. It describes the ideal shape the extraction
// prompt asks for; payloads that miss it are still normalized, but get flagged
// for review.
func BuildInvoiceJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"invoice_number": map[string]any{"type": "string"},
			"supplier_name":  map[string]any{"type": []string{"string", "null"}},
			"issue_date":     dateProp(),
			"due_date":       dateProp(),
			"items":          itemsProp(),
			"subtotal":       map[string]any{"type": []string{"number", "null"}},
			"tax":            map[string]any{"type": []string{"number", "null"}},
			"total":          map[string]any{"type": "number"},
			"raw_text":       map[string]any{"type": []string{"string", "null"}},
		},
		"required": []string{"supplier_name", "items", "total"},
	}
}

// BuildContractJSONSchema returns the JSON Schema for an extracted contract
// payload.
func BuildContractJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"supplier_name":   map[string]any{"type": []string{"string", "null"}},
			"items":           itemsProp(),
			"effective_date":  dateProp(),
			"expiration_date": dateProp(),
			"payment_terms":   map[string]any{"type": []string{"string", "null"}},
			"max_amount":      map[string]any{"type": []string{"number", "null"}},
		},
		"required": []string{"supplier_name", "items"},
	}
}

func itemsProp() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description": map[string]any{"type": "string"},
				"quantity":    map[string]any{"type": []string{"number", "null"}},
				"unit_price":  map[string]any{"type": []string{"number", "null"}},
				"total":       map[string]any{"type": []string{"number", "null"}},
			},
			"required": []string{"description"},
		},
	}
}

func dateProp() map[string]any {
	return map[string]any{
		"type":    []string{"string", "null"},
		"pattern": `^\d{4}-\d{2}-\d{2}$`,
	}
}

// ValidateAgainstSchema validates data against schemaMap.
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
