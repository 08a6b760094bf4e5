package entity

import (
	"time"

	"github.com/google/uuid"
)

// IssueType tags one discrepancy found during reconciliation.
type IssueType string

const (
	IssueServiceNotInContract IssueType = "service_not_in_contract"
	IssuePriceMismatch        IssueType = "price_mismatch"
	IssueSupplierMismatch     IssueType = "supplier_mismatch"
	IssueContractInvalid      IssueType = "contract_invalid"
	IssueInvoiceInvalid       IssueType = "invoice_invalid"
	IssueComparisonError      IssueType = "comparison_error"
)

// Keys of the ComparisonResult matches map.
const (
	MatchKeyPrices   = "prices_match"
	MatchKeyServices = "all_services_in_contract"
	MatchKeySupplier = "supplier_name"
)

// Issue is a structured record of one discrepancy. Which fields are populated
// depends on Type: price mismatches carry both prices, supplier mismatches
// carry both names, comparison errors carry Detail.
type Issue struct {
	Type          IssueType `json:"type"`
	ServiceName   string    `json:"service_name,omitempty"`
	ContractValue *float64  `json:"contract_value,omitempty"`
	InvoiceValue  *float64  `json:"invoice_value,omitempty"`
	ContractName  string    `json:"contract_name,omitempty"`
	InvoiceName   string    `json:"invoice_name,omitempty"`
	Detail        string    `json:"detail,omitempty"`
}

// PriceDetail is one audit entry per invoice item, in invoice item order.
// ContractPrice is nil when the item had no contract counterpart.
type PriceDetail struct {
	ServiceName   string   `json:"service_name"`
	ContractPrice *float64 `json:"contract_price"`
	InvoicePrice  float64  `json:"invoice_price"`
	Matched       bool     `json:"matched"`
	Note          string   `json:"note,omitempty"`
}

// ComparisonResult is the outcome of reconciling one invoice against one
// contract. It is produced once and never mutated afterwards.
type ComparisonResult struct {
	ID           uuid.UUID       `json:"id,omitempty"`
	ContractID   string          `json:"contract_id"`
	Matches      map[string]bool `json:"matches"`
	Issues       []Issue         `json:"issues"`
	OverallMatch bool            `json:"overall_match"`
	PriceDetails []PriceDetail   `json:"price_comparison_details"`
	CreatedAt    time.Time       `json:"created_at,omitempty"`
}
