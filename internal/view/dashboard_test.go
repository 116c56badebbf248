package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ekstre/internal/domain"
	"ekstre/internal/testutil"
)

func TestDashboardRange(t *testing.T) {
	now := time.Date(2024, time.July, 18, 14, 0, 0, 0, time.UTC)
	start, end := DashboardRange(now)

	assert.Equal(t, "2023-07-01", start.String(), "first of the month twelve months back")
	assert.Equal(t, "2024-07-31", end.String(), "end of the current month")
}

func TestDashboardRange_MonthLengths(t *testing.T) {
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	start, end := DashboardRange(now)
	assert.Equal(t, "2023-02-01", start.String())
	assert.Equal(t, "2024-02-29", end.String(), "leap February")
}

func TestTransactionsRange(t *testing.T) {
	now := time.Date(2024, time.July, 18, 14, 0, 0, 0, time.UTC)
	start, end := TransactionsRange(now)
	assert.Equal(t, "2023-07-01", start.String())
	assert.Equal(t, "2024-07-18", end.String(), "through today")
}

func TestDashboard_LoadFetchesBothInParallel(t *testing.T) {
	stub := &testutil.StubAPI{
		ListFunc: func(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
			return &domain.TransactionPage{Count: 1, Results: []domain.Transaction{{ID: 1}}}, nil
		},
		SummaryFunc: func(ctx context.Context, start, end domain.Date, target string) (*domain.Summary, error) {
			return &domain.Summary{NetCashFlow: decimal.NewFromInt(600)}, nil
		},
	}

	d := NewDashboard(stub)
	require.NoError(t, d.Load(context.Background()))

	assert.False(t, d.Loading, "loading ends only after both fetches complete")
	require.Len(t, d.Transactions, 1)
	require.NotNil(t, d.Summary)
	assert.Equal(t, "600", d.Summary.NetCashFlow.String())
	assert.Len(t, stub.ListCalls, 1)
	assert.Equal(t, 1, stub.SummaryCalls)
}

func TestDashboard_FilterCarriesCurrency(t *testing.T) {
	stub := &testutil.StubAPI{}
	d := NewDashboard(stub)
	d.TargetCurrency = "EUR"

	require.NoError(t, d.Load(context.Background()))

	require.Len(t, stub.ListCalls, 1)
	assert.Equal(t, "EUR", stub.ListCalls[0].TargetCurrency)
	assert.Equal(t, d.StartDate, stub.ListCalls[0].StartDate)
	assert.Equal(t, d.EndDate, stub.ListCalls[0].EndDate)
}

func TestDashboard_FailureResetsToEmptyState(t *testing.T) {
	boom := errors.New("connection refused")
	stub := &testutil.StubAPI{
		ListFunc: func(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
			return nil, boom
		},
	}

	d := NewDashboard(stub)
	d.Transactions = []domain.Transaction{{ID: 99}} // leftovers from a previous load
	d.Summary = &domain.Summary{}

	err := d.Load(context.Background())
	require.Error(t, err)

	assert.False(t, d.Loading)
	assert.Nil(t, d.Transactions, "failure degrades to the empty state")
	assert.Nil(t, d.Summary)
}

func TestDashboard_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	stub := &testutil.StubAPI{
		ListFunc: func(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error) {
			if filter.TargetCurrency == "SLOW" {
				<-release
				return &domain.TransactionPage{Results: []domain.Transaction{{ID: 1, Description: "stale"}}}, nil
			}
			return &domain.TransactionPage{Results: []domain.Transaction{{ID: 2, Description: "fresh"}}}, nil
		},
	}

	d := NewDashboard(stub)

	d.TargetCurrency = "SLOW"
	slowDone := make(chan error)
	go func() { slowDone <- d.Load(context.Background()) }()

	// Wait for the slow load to be in flight before issuing the fresh one.
	require.Eventually(t, func() bool {
		return len(stub.Calls()) >= 1
	}, time.Second, time.Millisecond)

	d.TargetCurrency = ""
	require.NoError(t, d.Load(context.Background()))
	require.Len(t, d.Transactions, 1)
	assert.Equal(t, "fresh", d.Transactions[0].Description)

	close(release)
	require.NoError(t, <-slowDone)

	// The stale response must not have overwritten the fresh one.
	require.Len(t, d.Transactions, 1)
	assert.Equal(t, "fresh", d.Transactions[0].Description)
}
