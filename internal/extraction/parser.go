package extraction

import (
	"encoding/json"
	"log/slog"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/normalize"
)

// Parser turns raw extractor responses into normalized documents. It never
// fails: an undecodable response yields an all-default document carrying the
// raw text, and a decodable response that misses the expected schema is
// normalized anyway and flagged for review.
type Parser struct {
	logger     *slog.Logger
	normalizer *normalize.Normalizer
}

func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger, normalizer: normalize.New(logger)}
}

// Invoice parses and normalizes an invoice extraction response.
func (p *Parser) Invoice(raw string) *entity.Invoice {
	payload, err := DecodePayload(raw)
	if err != nil {
		p.logger.Warn("extraction.invoice.undecodable", "error", err, "raw_bytes", len(raw))
		inv := p.normalizer.Invoice(nil)
		inv.RawText = raw
		inv.NeedsReview = true
		return inv
	}

	needsReview := false
	if err := p.validate(BuildInvoiceJSONSchema(), payload); err != nil {
		p.logger.Warn("extraction.invoice.schema_mismatch", "error", err)
		needsReview = true
	}

	inv := p.normalizer.Invoice(payload)
	if inv.RawText == "" {
		inv.RawText = raw
	}
	inv.NeedsReview = needsReview
	p.logger.Info("extraction.invoice.ok",
		"invoice_number", inv.InvoiceNumber,
		"supplier", inv.SupplierName,
		"items", len(inv.Items),
		"total", inv.Total,
		"needs_review", inv.NeedsReview,
	)
	return inv
}

// Contract parses and normalizes a contract extraction response.
func (p *Parser) Contract(raw string) *entity.Contract {
	payload, err := DecodePayload(raw)
	if err != nil {
		p.logger.Warn("extraction.contract.undecodable", "error", err, "raw_bytes", len(raw))
		c := p.normalizer.Contract(nil)
		c.NeedsReview = true
		return c
	}

	needsReview := false
	if err := p.validate(BuildContractJSONSchema(), payload); err != nil {
		p.logger.Warn("extraction.contract.schema_mismatch", "error", err)
		needsReview = true
	}

	c := p.normalizer.Contract(payload)
	c.NeedsReview = needsReview
	p.logger.Info("extraction.contract.ok",
		"supplier", c.SupplierName,
		"items", len(c.Items),
		"needs_review", c.NeedsReview,
	)
	return c
}

func (p *Parser) validate(schema map[string]any, payload map[string]any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return ValidateAgainstSchema(schema, b)
}
