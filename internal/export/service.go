package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/repository"
)

// Service is a tiny façade over the result repository that produces XLSX
// bytes for comparison exports.
type Service struct {
	results repository.ResultRepository
	logger  *slog.Logger
}

func NewService(results repository.ResultRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{results: results, logger: logger}
}

// ExportComparisonXLSX returns an XLSX workbook (as bytes) for one stored
// comparison result: a summary sheet with the match flags and issues, and a
// detail sheet with the per-item price comparison.
func (s *Service) ExportComparisonXLSX(ctx context.Context, resultID uuid.UUID) ([]byte, error) {
	start := time.Now()

	res, err := s.results.Get(ctx, resultID)
	if err != nil {
		return nil, fmt.Errorf("load comparison result: %w", err)
	}

	f := excelize.NewFile()
	if err := writeSummarySheet(f, res); err != nil {
		return nil, err
	}
	if err := writeDetailSheet(f, res); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"result_id", resultID.String(),
		"issues", len(res.Issues),
		"items", len(res.PriceDetails),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, res *entity.ComparisonResult) error {
	const sheet = "Summary"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "Contract ID")
	write(2, 1, res.ContractID)
	write(1, 2, "Overall Match")
	write(2, 2, res.OverallMatch)
	write(1, 3, "Compared At")
	if !res.CreatedAt.IsZero() {
		write(2, 3, res.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	row := 5
	write(1, row, "Check")
	write(2, row, "Passed")
	row++
	for _, key := range []string{entity.MatchKeyPrices, entity.MatchKeyServices, entity.MatchKeySupplier} {
		passed, ok := res.Matches[key]
		if !ok {
			continue
		}
		write(1, row, key)
		write(2, row, passed)
		row++
	}

	row++
	write(1, row, "Issue Type")
	write(2, row, "Service")
	write(3, row, "Contract Value")
	write(4, row, "Invoice Value")
	write(5, row, "Detail")
	row++
	for _, issue := range res.Issues {
		write(1, row, string(issue.Type))
		write(2, row, issue.ServiceName)
		if issue.ContractValue != nil {
			write(3, row, *issue.ContractValue)
		}
		if issue.InvoiceValue != nil {
			write(4, row, *issue.InvoiceValue)
		}
		detail := issue.Detail
		if detail == "" && issue.Type == entity.IssueSupplierMismatch {
			detail = fmt.Sprintf("contract %q vs invoice %q", issue.ContractName, issue.InvoiceName)
		}
		write(5, row, truncate(detail, 140))
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 26)
	_ = f.SetColWidth(sheet, "B", "B", 30)
	_ = f.SetColWidth(sheet, "C", "D", 16)
	_ = f.SetColWidth(sheet, "E", "E", 48)
	return nil
}

func writeDetailSheet(f *excelize.File, res *entity.ComparisonResult) error {
	const sheet = "Price Details"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	headers := []string{"Service", "Contract Price", "Invoice Price", "Matched", "Note"}
	for i, h := range headers {
		write(i+1, 1, h)
	}

	row := 2
	for _, d := range res.PriceDetails {
		write(1, row, d.ServiceName)
		if d.ContractPrice != nil {
			write(2, row, *d.ContractPrice)
		}
		write(3, row, d.InvoicePrice)
		write(4, row, d.Matched)
		write(5, row, d.Note)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 34)
	_ = f.SetColWidth(sheet, "B", "C", 16)
	_ = f.SetColWidth(sheet, "D", "D", 10)
	_ = f.SetColWidth(sheet, "E", "E", 40)
	return nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
