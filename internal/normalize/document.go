package normalize

import (
	"log/slog"
	"time"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
)

// Normalizer turns loosely-typed extraction payloads into fully defaulted
// documents. It never fails: the worst malformed payload produces a document
// with every field at its default.
type Normalizer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Invoice normalizes one invoice payload. Steps, in order: default header
// fields, normalize line items, recompute a zero document total from the item
// sum when that sum is positive, and synthesize a single "Unknown Item" line
// when no items were extracted but a positive total exists.
func (n *Normalizer) Invoice(payload map[string]any) *entity.Invoice {
	if payload == nil {
		payload = map[string]any{}
	}

	inv := &entity.Invoice{
		InvoiceNumber: String(payload["invoice_number"], ""),
		SupplierName:  String(payload["supplier_name"], entity.UnknownSupplier),
		IssueDate:     DateOrToday(payload["issue_date"]),
		DueDate:       Date(payload["due_date"]),
		Items:         Items(payload["items"]),
		Subtotal:      Money(payload["subtotal"]),
		Tax:           Money(payload["tax"]),
		Total:         Money(payload["total"]),
		RawText:       String(payload["raw_text"], ""),
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = "INV-" + time.Now().UTC().Format("20060102150405")
	}

	// A stated zero total with priced items means the extractor missed the
	// total line; a genuinely zero invoice stays at zero.
	if inv.Total == 0 {
		if sum := inv.ItemTotalSum(); sum > 0 {
			n.logger.Debug("normalize.invoice.total_from_items", "sum", sum)
			inv.Total = sum
		}
	}

	// Every document with a positive total gets at least one line item to
	// reconcile against.
	if len(inv.Items) == 0 && inv.Total > 0 {
		n.logger.Debug("normalize.invoice.item_synthesized", "total", inv.Total)
		inv.Items = []entity.LineItem{{
			Description: entity.UnknownItem,
			Quantity:    1.0,
			UnitPrice:   inv.Total,
			Total:       inv.Total,
		}}
	}

	return inv
}

// Contract normalizes one contract payload.
func (n *Normalizer) Contract(payload map[string]any) *entity.Contract {
	if payload == nil {
		payload = map[string]any{}
	}

	return &entity.Contract{
		SupplierName:   String(payload["supplier_name"], entity.UnknownSupplier),
		Items:          Items(payload["items"]),
		EffectiveDate:  Date(payload["effective_date"]),
		ExpirationDate: Date(payload["expiration_date"]),
		PaymentTerms:   optionalString(payload["payment_terms"]),
		MaxAmount:      OptionalMoney(payload["max_amount"]),
	}
}

func optionalString(v any) *string {
	if s := String(v, ""); s != "" {
		return &s
	}
	return nil
}
