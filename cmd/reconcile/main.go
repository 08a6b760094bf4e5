// Command reconcile compares an extracted contract payload against an
// extracted invoice payload offline, without the HTTP server or database:
//
//	reconcile -contract contract.json -invoice invoice.json
//
// Both files hold raw extraction payloads (markdown fences tolerated). The
// comparison result is printed as JSON on stdout; the exit code is 0 when the
// documents reconcile and 1 when they do not.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/extraction"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/recon"
)

func main() {
	contractPath := flag.String("contract", "", "path to the contract payload (JSON)")
	invoicePath := flag.String("invoice", "", "path to the invoice payload (JSON)")
	flag.Parse()

	logger := common.InitLogger()

	if *contractPath == "" || *invoicePath == "" {
		fmt.Fprintln(os.Stderr, "usage: reconcile -contract contract.json -invoice invoice.json")
		os.Exit(2)
	}

	contractRaw, err := os.ReadFile(*contractPath)
	if err != nil {
		logger.Error("failed to read contract payload", "path", *contractPath, "error", err)
		os.Exit(2)
	}
	invoiceRaw, err := os.ReadFile(*invoicePath)
	if err != nil {
		logger.Error("failed to read invoice payload", "path", *invoicePath, "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	parser := extraction.NewParser(logger)
	contract := parser.Contract(string(contractRaw))
	invoice := parser.Invoice(string(invoiceRaw))

	matcher := recon.NewTieredMatcher(cfg.Recon.MinOverlapWords, cfg.Recon.OverlapRatio)
	engine := recon.NewEngine(logger, matcher, recon.Config{
		PriceTolerance:     cfg.Recon.PriceTolerance,
		CompareSupplier:    cfg.Recon.CompareSupplier,
		SupplierSimilarity: cfg.Recon.SupplierSimilarity,
	})

	result := engine.Compare(contract, invoice)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		logger.Error("failed to encode result", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(out))

	if !result.OverallMatch {
		os.Exit(1)
	}
}
