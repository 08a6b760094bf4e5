package entity

// Placeholder values used when the extraction payload is missing a field.
const (
	UnknownItem     = "Unknown Item"
	UnknownSupplier = "Unknown Supplier"
)

// LineItem is one good/service entry on a document. Instances are created by
// the normalizer and are value objects: contract and invoice items are never
// shared, even when their descriptions are identical.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}
