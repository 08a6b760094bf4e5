package recon

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
)

// Config holds reconciliation thresholds. All of them are adjustable through
// the environment; see common.LoadConfig.
type Config struct {
	// PriceTolerance is the absolute difference in currency units under
	// which a contract price and an invoice price count as equal.
	PriceTolerance float64
	// CompareSupplier adds a fuzzy supplier-name check to the matches map.
	// Off by default: supplier extraction is noisy enough that it should
	// not gate overall_match unless explicitly requested.
	CompareSupplier bool
	// SupplierSimilarity is the minimum Levenshtein similarity for supplier
	// names to count as matching when CompareSupplier is on.
	SupplierSimilarity float64
}

const (
	defaultPriceTolerance     = 0.01
	defaultSupplierSimilarity = 0.8
)

// Engine reconciles a normalized invoice against a normalized contract.
// It is pure computation: no I/O, no shared state, safe to run concurrently.
type Engine struct {
	logger  *slog.Logger
	matcher Matcher
	cfg     Config
}

func NewEngine(logger *slog.Logger, matcher Matcher, cfg Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if matcher == nil {
		matcher = NewTieredMatcher(0, 0)
	}
	if cfg.PriceTolerance <= 0 {
		cfg.PriceTolerance = defaultPriceTolerance
	}
	if cfg.SupplierSimilarity <= 0 {
		cfg.SupplierSimilarity = defaultSupplierSimilarity
	}
	return &Engine{logger: logger, matcher: matcher, cfg: cfg}
}

// Compare produces the ComparisonResult for one (contract, invoice) pair.
// It never returns an error: documents with no items on either side yield a
// contract_invalid / invoice_invalid result, and an unexpected panic is
// converted into a comparison_error result.
func (e *Engine) Compare(contract *entity.Contract, invoice *entity.Invoice) (res *entity.ComparisonResult) {
	contractID := contract.ID.String()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("recon.compare.panic", "contract_id", contractID, "error", r)
			res = &entity.ComparisonResult{
				ContractID:   contractID,
				Matches:      failedMatches(),
				Issues:       []entity.Issue{{Type: entity.IssueComparisonError, Detail: fmt.Sprint(r)}},
				OverallMatch: false,
				PriceDetails: []entity.PriceDetail{},
			}
		}
	}()

	if len(contract.Items) == 0 {
		return invalidResult(contractID, entity.IssueContractInvalid, "contract has no line items")
	}
	if len(invoice.Items) == 0 {
		return invalidResult(contractID, entity.IssueInvoiceInvalid, "invoice has no line items")
	}

	matches := map[string]bool{
		entity.MatchKeyServices: true,
		entity.MatchKeyPrices:   true,
	}
	issues := make([]entity.Issue, 0)
	details := make([]entity.PriceDetail, 0, len(invoice.Items))

	if e.cfg.CompareSupplier {
		ok := e.suppliersMatch(contract.SupplierName, invoice.SupplierName)
		matches[entity.MatchKeySupplier] = ok
		if !ok {
			issues = append(issues, entity.Issue{
				Type:         entity.IssueSupplierMismatch,
				ContractName: contract.SupplierName,
				InvoiceName:  invoice.SupplierName,
			})
		}
	}

	for _, item := range invoice.Items {
		idx, found := e.matcher.Match(item, contract.Items)
		if !found {
			matches[entity.MatchKeyServices] = false
			issues = append(issues, entity.Issue{
				Type:        entity.IssueServiceNotInContract,
				ServiceName: item.Description,
			})
			details = append(details, entity.PriceDetail{
				ServiceName:  item.Description,
				InvoicePrice: item.UnitPrice,
				Matched:      false,
				Note:         "no matching contract item",
			})
			continue
		}

		contractItem := contract.Items[idx]
		contractPrice := contractItem.UnitPrice
		if e.pricesAgree(contractPrice, item.UnitPrice) {
			details = append(details, entity.PriceDetail{
				ServiceName:   item.Description,
				ContractPrice: &contractPrice,
				InvoicePrice:  item.UnitPrice,
				Matched:       true,
			})
		} else {
			matches[entity.MatchKeyPrices] = false
			invoicePrice := item.UnitPrice
			issues = append(issues, entity.Issue{
				Type:          entity.IssuePriceMismatch,
				ServiceName:   item.Description,
				ContractValue: &contractPrice,
				InvoiceValue:  &invoicePrice,
			})
			details = append(details, entity.PriceDetail{
				ServiceName:   item.Description,
				ContractPrice: &contractPrice,
				InvoicePrice:  item.UnitPrice,
				Matched:       false,
			})
		}
	}

	overall := true
	for _, ok := range matches {
		overall = overall && ok
	}

	e.logger.Info("recon.compare.ok",
		"contract_id", contractID,
		"invoice_items", len(invoice.Items),
		"issues", len(issues),
		"overall_match", overall,
	)

	return &entity.ComparisonResult{
		ContractID:   contractID,
		Matches:      matches,
		Issues:       issues,
		OverallMatch: overall,
		PriceDetails: details,
	}
}

// pricesAgree reports whether a contract price and an invoice price count as
// matching: within the absolute tolerance, or the zero/negative pairing that
// extracted credit-note lines produce when one side drops the sign.
func (e *Engine) pricesAgree(contractPrice, invoicePrice float64) bool {
	if math.Abs(invoicePrice-contractPrice) <= e.cfg.PriceTolerance {
		return true
	}
	if invoicePrice == 0 && contractPrice < 0 {
		return true
	}
	if contractPrice == 0 && invoicePrice < 0 {
		return true
	}
	return false
}

func (e *Engine) suppliersMatch(contractName, invoiceName string) bool {
	a := strings.ToLower(strings.TrimSpace(contractName))
	b := strings.ToLower(strings.TrimSpace(invoiceName))
	if a == b {
		return true
	}
	return levenshtein.Similarity(a, b, levenshtein.NewParams()) >= e.cfg.SupplierSimilarity
}

func invalidResult(contractID string, kind entity.IssueType, detail string) *entity.ComparisonResult {
	return &entity.ComparisonResult{
		ContractID:   contractID,
		Matches:      failedMatches(),
		Issues:       []entity.Issue{{Type: kind, Detail: detail}},
		OverallMatch: false,
		PriceDetails: []entity.PriceDetail{},
	}
}

func failedMatches() map[string]bool {
	return map[string]bool{
		entity.MatchKeyServices: false,
		entity.MatchKeyPrices:   false,
	}
}
