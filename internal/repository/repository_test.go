package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/common"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
)

func TestContractRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	repo := NewContractRepository(db, nil)
	ctx := context.Background()

	terms := "Net 30"
	effective := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := &entity.Contract{
		SupplierName: "ABC Corp",
		Items: []entity.LineItem{
			{Description: "Consulting", Quantity: 1, UnitPrice: 100, Total: 100},
		},
		EffectiveDate: &effective,
		PaymentTerms:  &terms,
	}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABC Corp", got.SupplierName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 100.0, got.Items[0].UnitPrice)
	require.NotNil(t, got.EffectiveDate)
	assert.True(t, got.EffectiveDate.Equal(effective))
	require.NotNil(t, got.PaymentTerms)
	assert.Equal(t, "Net 30", *got.PaymentTerms)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), common.ErrNotFound)
}

func TestInvoiceRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	repo := NewInvoiceRepository(db, nil)
	ctx := context.Background()

	in := &entity.Invoice{
		InvoiceNumber: "INV-42",
		SupplierName:  "ABC Corp",
		IssueDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Items: []entity.LineItem{
			{Description: "Hosting", Quantity: 2, UnitPrice: 25, Total: 50},
		},
		Total:       50,
		NeedsReview: true,
	}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-42", got.InvoiceNumber)
	assert.True(t, got.NeedsReview)
	assert.Nil(t, got.DueDate)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 50.0, got.Items[0].Total)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestResultRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	repo := NewResultRepository(db, nil)
	ctx := context.Background()

	price := 100.0
	in := &entity.ComparisonResult{
		ContractID: "c-1",
		Matches: map[string]bool{
			entity.MatchKeyPrices:   false,
			entity.MatchKeyServices: true,
		},
		Issues: []entity.Issue{
			{Type: entity.IssuePriceMismatch, ServiceName: "Consulting", ContractValue: &price},
		},
		PriceDetails: []entity.PriceDetail{
			{ServiceName: "Consulting", ContractPrice: &price, InvoicePrice: 120, Matched: false},
		},
	}

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.OverallMatch)
	assert.Equal(t, "c-1", got.ContractID)
	require.Len(t, got.Issues, 1)
	assert.Equal(t, entity.IssuePriceMismatch, got.Issues[0].Type)
	require.Len(t, got.PriceDetails, 1)
	require.NotNil(t, got.PriceDetails[0].ContractPrice)
	assert.Equal(t, 100.0, *got.PriceDetails[0].ContractPrice)

	byContract, err := repo.ListByContract(ctx, "c-1")
	require.NoError(t, err)
	assert.Len(t, byContract, 1)
}

func TestHealthCheck(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, HealthCheck(context.Background(), db, time.Second))
}
