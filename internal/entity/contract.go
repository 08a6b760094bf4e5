package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contract is a normalized supplier contract: the reference side of a
// reconciliation. Items carry the agreed unit prices.
type Contract struct {
	ID             uuid.UUID  `json:"id,omitempty"`
	SupplierName   string     `json:"supplier_name"`
	Items          []LineItem `json:"items"`
	EffectiveDate  *time.Time `json:"effective_date,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	PaymentTerms   *string    `json:"payment_terms,omitempty"`
	MaxAmount      *float64   `json:"max_amount,omitempty"`

	NeedsReview bool `json:"needs_review,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
