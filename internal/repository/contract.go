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

type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) (*entity.Contract, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Contract, error)
	List(ctx context.Context) ([]*entity.Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type contractRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewContractRepository(db *sql.DB, logger *slog.Logger) ContractRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &contractRepository{db: db, logger: logger}
}

func (r *contractRepository) Create(ctx context.Context, c *entity.Contract) (*entity.Contract, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	items, err := json.Marshal(c.Items)
	if err != nil {
		return nil, common.WrapError(err, "marshal contract items")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO contracts
			(id, supplier_name, items, effective_date, expiration_date, payment_terms, max_amount, needs_review, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID.String(), c.SupplierName, string(items),
		nullableTime(c.EffectiveDate), nullableTime(c.ExpirationDate),
		c.PaymentTerms, c.MaxAmount, boolToInt(c.NeedsReview),
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to insert contract", "contract_id", c.ID, "error", err)
		return nil, common.NewAppError("DB_INSERT", "insert contract", err)
	}
	return c, nil
}

func (r *contractRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Contract, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, supplier_name, items, effective_date, expiration_date, payment_terms, max_amount, needs_review, created_at, updated_at
		FROM contracts WHERE id = ?`, id.String())
	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to load contract", "contract_id", id, "error", err)
		return nil, common.NewAppError("DB_QUERY", "load contract", err)
	}
	return c, nil
}

func (r *contractRepository) List(ctx context.Context) ([]*entity.Contract, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, supplier_name, items, effective_date, expiration_date, payment_terms, max_amount, needs_review, created_at, updated_at
		FROM contracts ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list contracts", "error", err)
		return nil, common.NewAppError("DB_QUERY", "list contracts", err)
	}
	defer rows.Close()

	var out []*entity.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, common.NewAppError("DB_SCAN", "scan contract", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id.String())
	if err != nil {
		r.logger.Error("failed to delete contract", "contract_id", id, "error", err)
		return common.NewAppError("DB_DELETE", "delete contract", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*entity.Contract, error) {
	var (
		c                  entity.Contract
		id, items          string
		effective, expires sql.NullString
		terms              sql.NullString
		maxAmount          sql.NullFloat64
		needsReview        int
		created, updated   string
	)
	err := row.Scan(&id, &c.SupplierName, &items, &effective, &expires, &terms, &maxAmount, &needsReview, &created, &updated)
	if err != nil {
		return nil, err
	}
	c.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(items), &c.Items); err != nil {
		return nil, err
	}
	c.EffectiveDate = parseNullTime(effective)
	c.ExpirationDate = parseNullTime(expires)
	if terms.Valid {
		c.PaymentTerms = &terms.String
	}
	if maxAmount.Valid {
		c.MaxAmount = &maxAmount.Float64
	}
	c.NeedsReview = needsReview != 0
	c.CreatedAt, _ = time.Parse(time.RFC3339, created)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return &c, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
