package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partsight/insight-cli/internal/model"
	"github.com/partsight/insight-cli/internal/resilience"
)

var factColumns = []string{
	"claim_id", "part_type_id", "part_id", "supplier_id", "workshop_id", "insurer_id",
	"claim_number", "part_type", "part_name", "supplier_name", "workshop_name",
	"price", "status_category",
	"order_date", "delivery_date", "deadline_date",
	"is_auto_assigned", "is_auto_quoted", "quote_days",
	"supplier_cancel_reason", "insurer_reassign_reason", "manual_quote_reason",
}

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *PostgresStore) {
	t.Helper()
	// pgxmock v4 has no exported option type; pings are always monitored.
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s := newPostgresWithPool(mock, mock.Close)
	// Keep retries but without real backoff sleeps.
	s.retry = resilience.Policy{MaxAttempts: 3, InitialBackoff: time.Microsecond}
	return mock, s
}

func TestPostgresFetchOrderFacts_ScansRow(t *testing.T) {
	mock, s := newMockStore(t)

	ordered := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	delivered := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM dw\.fact_orders`).WillReturnRows(
		pgxmock.NewRows(factColumns).AddRow(
			int64(11), int64(1), int64(101), int64(5), int64(9), int64(3),
			"CLM-2026-001", "Bumper", "Front bumper", "Acme Parts", "Shop A",
			149.50, "Complete",
			ordered, delivered, nil,
			true, false, 0.5,
			nil, nil, nil,
		),
	)

	facts, err := s.FetchOrderFacts(context.Background(), model.FilterSpec{})

	require.NoError(t, err)
	require.Len(t, facts, 1)
	f := facts[0]
	require.NotNil(t, f.ClaimID)
	assert.Equal(t, int64(11), *f.ClaimID)
	require.NotNil(t, f.SupplierID)
	assert.Equal(t, int64(5), *f.SupplierID)
	assert.Equal(t, "CLM-2026-001", f.ClaimNumber)
	assert.Equal(t, "Bumper", f.PartType)
	assert.Equal(t, "Acme Parts", f.SupplierName)
	assert.Equal(t, 149.50, f.Price)
	assert.Equal(t, model.StatusComplete, f.StatusCategory)
	require.NotNil(t, f.OrderDate)
	assert.Equal(t, ordered, *f.OrderDate)
	require.NotNil(t, f.DeliveryDate)
	assert.Nil(t, f.DeadlineDate)
	assert.True(t, f.IsAutoAssigned)
	assert.False(t, f.IsAutoQuoted)
	require.NotNil(t, f.QuoteDays)
	assert.Equal(t, 0.5, *f.QuoteDays)
	assert.Nil(t, f.SupplierCancelReason)
	assert.True(t, f.Delivered())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFetchOrderFacts_NullDimensions(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectQuery(`FROM dw\.fact_orders`).WillReturnRows(
		pgxmock.NewRows(factColumns).AddRow(
			nil, nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil,
			0.0, "Cancelled",
			nil, nil, nil,
			false, false, nil,
			"out of stock", nil, nil,
		),
	)

	facts, err := s.FetchOrderFacts(context.Background(), model.FilterSpec{})

	require.NoError(t, err)
	require.Len(t, facts, 1)
	f := facts[0]
	assert.Nil(t, f.ClaimID)
	assert.Nil(t, f.SupplierID)
	assert.Equal(t, "", f.SupplierName)
	assert.Equal(t, model.StatusCancelled, f.StatusCategory)
	assert.Nil(t, f.OrderDate)
	assert.Nil(t, f.QuoteDays)
	require.NotNil(t, f.SupplierCancelReason)
	assert.Equal(t, "out of stock", *f.SupplierCancelReason)
	assert.False(t, f.Delivered())
}

func TestPostgresFetchOrderFacts_FilterPredicates(t *testing.T) {
	mock, s := newMockStore(t)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	insurer := int64(3)

	mock.ExpectQuery(`f\.insurer_id = \$1 AND od\.date >= \$2 AND od\.date <= \$3`).
		WithArgs(insurer, start, end).
		WillReturnRows(pgxmock.NewRows(factColumns))

	facts, err := s.FetchOrderFacts(context.Background(), model.FilterSpec{
		InsurerID: &insurer,
		StartDate: &start,
		EndDate:   &end,
	})

	require.NoError(t, err)
	assert.Empty(t, facts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFetchOrderFacts_RetriesTransient(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectQuery(`FROM dw\.fact_orders`).
		WillReturnError(resilience.NewTransientError(eris.New("conn closed")))
	mock.ExpectQuery(`FROM dw\.fact_orders`).
		WillReturnRows(pgxmock.NewRows(factColumns))

	_, err := s.FetchOrderFacts(context.Background(), model.FilterSpec{})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFetchOrderFacts_PermanentErrorNotRetried(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectQuery(`FROM dw\.fact_orders`).
		WillReturnError(eris.New("relation does not exist"))

	_, err := s.FetchOrderFacts(context.Background(), model.FilterSpec{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "query order facts")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListInsurers(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectQuery(`FROM dw\.dim_insurer`).WillReturnRows(
		pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "AXA").
			AddRow(int64(2), "Tryg"),
	)

	insurers, err := s.ListInsurers(context.Background())

	require.NoError(t, err)
	require.Len(t, insurers, 2)
	assert.Equal(t, model.Insurer{ID: 1, Name: "AXA"}, insurers[0])
	assert.Equal(t, model.Insurer{ID: 2, Name: "Tryg"}, insurers[1])
}

func TestPostgresPing(t *testing.T) {
	mock, s := newMockStore(t)

	mock.ExpectPing()
	assert.NoError(t, s.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(eris.New("down"))
	err := s.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: ping")
}
