package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context) ([]*entity.Invoice, error)
}

type invoiceRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewInvoiceRepository(db *sql.DB, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *entity.Invoice) (*entity.Invoice, error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now().UTC()

	items, err := json.Marshal(inv.Items)
	if err != nil {
		return nil, common.WrapError(err, "marshal invoice items")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO invoices
			(id, invoice_number, supplier_name, issue_date, due_date, items, subtotal, tax, total, raw_text, needs_review, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID.String(), inv.InvoiceNumber, inv.SupplierName,
		inv.IssueDate.UTC().Format(time.RFC3339), nullableTime(inv.DueDate),
		string(items), inv.Subtotal, inv.Tax, inv.Total, inv.RawText,
		boolToInt(inv.NeedsReview), inv.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to insert invoice", "invoice_id", inv.ID, "error", err)
		return nil, common.NewAppError("DB_INSERT", "insert invoice", err)
	}
	return inv, nil
}

func (r *invoiceRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, invoice_number, supplier_name, issue_date, due_date, items, subtotal, tax, total, raw_text, needs_review, created_at
		FROM invoices WHERE id = ?`, id.String())
	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to load invoice", "invoice_id", id, "error", err)
		return nil, common.NewAppError("DB_QUERY", "load invoice", err)
	}
	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*entity.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, invoice_number, supplier_name, issue_date, due_date, items, subtotal, tax, total, raw_text, needs_review, created_at
		FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list invoices", "error", err)
		return nil, common.NewAppError("DB_QUERY", "list invoices", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, common.NewAppError("DB_SCAN", "scan invoice", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvoice(row rowScanner) (*entity.Invoice, error) {
	var (
		inv         entity.Invoice
		id, items   string
		issue       string
		due         sql.NullString
		needsReview int
		created     string
	)
	err := row.Scan(&id, &inv.InvoiceNumber, &inv.SupplierName, &issue, &due, &items,
		&inv.Subtotal, &inv.Tax, &inv.Total, &inv.RawText, &needsReview, &created)
	if err != nil {
		return nil, err
	}
	inv.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &inv.Items); err != nil {
		return nil, err
	}
	inv.IssueDate, _ = time.Parse(time.RFC3339, issue)
	inv.DueDate = parseNullTime(due)
	inv.NeedsReview = needsReview != 0
	inv.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &inv, nil
}
