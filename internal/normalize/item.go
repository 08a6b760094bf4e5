package normalize

import (
	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
)

// Item normalizes one raw line item object from the extraction payload.
// Quantity defaults to 1, unit price to 0. The total is taken from the payload
// only when it is independently parseable; otherwise it is derived as
// quantity * unit_price so it is never left missing.
func Item(raw map[string]any) entity.LineItem {
	desc := Text(String(raw["description"], ""))
	if desc == "" {
		desc = entity.UnknownItem
	}

	qty := Quantity(raw["quantity"])
	unitPrice := Money(raw["unit_price"])

	total := qty * unitPrice
	if t := suppliedTotal(raw); t != nil {
		total = *t
	}

	return entity.LineItem{
		Description: desc,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Total:       total,
	}
}

// suppliedTotal looks for an explicit line total. Older extraction prompts
// used "total_price", newer ones "total"; both shapes still arrive.
func suppliedTotal(raw map[string]any) *float64 {
	if t := OptionalMoney(raw["total"]); t != nil {
		return t
	}
	return OptionalMoney(raw["total_price"])
}

// Items normalizes a raw items field. Anything that is not a list yields an
// empty slice; list entries that are not objects are skipped.
func Items(v any) []entity.LineItem {
	list, ok := v.([]any)
	if !ok {
		return []entity.LineItem{}
	}
	items := make([]entity.LineItem, 0, len(list))
	for _, el := range list {
		if raw, ok := el.(map[string]any); ok {
			items = append(items, Item(raw))
		}
	}
	return items
}
