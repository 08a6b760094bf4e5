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

type ResultRepository interface {
	Create(ctx context.Context, res *entity.ComparisonResult) (*entity.ComparisonResult, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.ComparisonResult, error)
	ListByContract(ctx context.Context, contractID string) ([]*entity.ComparisonResult, error)
}

type resultRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewResultRepository(db *sql.DB, logger *slog.Logger) ResultRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &resultRepository{db: db, logger: logger}
}

func (r *resultRepository) Create(ctx context.Context, res *entity.ComparisonResult) (*entity.ComparisonResult, error) {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	res.CreatedAt = time.Now().UTC()

	matches, err := json.Marshal(res.Matches)
	if err != nil {
		return nil, common.WrapError(err, "marshal matches")
	}
	issues, err := json.Marshal(res.Issues)
	if err != nil {
		return nil, common.WrapError(err, "marshal issues")
	}
	details, err := json.Marshal(res.PriceDetails)
	if err != nil {
		return nil, common.WrapError(err, "marshal price details")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO comparison_results
			(id, contract_id, matches, issues, overall_match, price_details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.ID.String(), res.ContractID, string(matches), string(issues),
		boolToInt(res.OverallMatch), string(details), res.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to insert comparison result", "result_id", res.ID, "error", err)
		return nil, common.NewAppError("DB_INSERT", "insert comparison result", err)
	}
	return res, nil
}

func (r *resultRepository) Get(ctx context.Context, id uuid.UUID) (*entity.ComparisonResult, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, contract_id, matches, issues, overall_match, price_details, created_at
		FROM comparison_results WHERE id = ?`, id.String())
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to load comparison result", "result_id", id, "error", err)
		return nil, common.NewAppError("DB_QUERY", "load comparison result", err)
	}
	return res, nil
}

func (r *resultRepository) ListByContract(ctx context.Context, contractID string) ([]*entity.ComparisonResult, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, contract_id, matches, issues, overall_match, price_details, created_at
		FROM comparison_results WHERE contract_id = ? ORDER BY created_at DESC`, contractID)
	if err != nil {
		r.logger.Error("failed to list comparison results", "contract_id", contractID, "error", err)
		return nil, common.NewAppError("DB_QUERY", "list comparison results", err)
	}
	defer rows.Close()

	var out []*entity.ComparisonResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, common.NewAppError("DB_SCAN", "scan comparison result", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanResult(row rowScanner) (*entity.ComparisonResult, error) {
	var (
		res                      entity.ComparisonResult
		id                       string
		matches, issues, details string
		overall                  int
		created                  string
	)
	err := row.Scan(&id, &res.ContractID, &matches, &issues, &overall, &details, &created)
	if err != nil {
		return nil, err
	}
	res.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(matches), &res.Matches); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(issues), &res.Issues); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(details), &res.PriceDetails); err != nil {
		return nil, err
	}
	res.OverallMatch = overall != 0
	res.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &res, nil
}
