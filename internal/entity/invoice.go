package entity

import (
	"time"

	"github.com/google/uuid"
)

// Invoice is a fully normalized extracted invoice.
// Every field is defaulted by the normalizer; none is ever "missing".
type Invoice struct {
	ID            uuid.UUID  `json:"id,omitempty"`
	InvoiceNumber string     `json:"invoice_number"`
	SupplierName  string     `json:"supplier_name"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	RawText       string     `json:"raw_text,omitempty"`

	// NeedsReview is set when the extraction payload failed schema validation
	// or could not be decoded at all, so a human should double-check the result.
	NeedsReview bool `json:"needs_review,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ItemTotalSum returns the sum of the line item totals.
func (inv *Invoice) ItemTotalSum() float64 {
	var sum float64
	for _, it := range inv.Items {
		sum += it.Total
	}
	return sum
}
