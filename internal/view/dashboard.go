package view

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"ekstre/internal/domain"
)

// API is the slice of the API client the views consume.
type API interface {
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) (*domain.TransactionPage, error)
	Summary(ctx context.Context, startDate, endDate domain.Date, targetCurrency string) (*domain.Summary, error)
}

// DashboardRange is the dashboard's default window: the first day of the
// month twelve months back through the end of the current month.
func DashboardRange(now time.Time) (domain.Date, domain.Date) {
	start := time.Date(now.Year(), now.Month()-12, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the next month is the last day of the current one.
	end := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return domain.NewDate(start), domain.NewDate(end)
}

// Dashboard is the overview page: summary cards plus recent transactions,
// fetched in parallel whenever the currency filter changes.
type Dashboard struct {
	api   API
	fetch Fetcher

	StartDate      domain.Date
	EndDate        domain.Date
	TargetCurrency string

	Transactions []domain.Transaction
	Summary      *domain.Summary
	Loading      bool
}

// NewDashboard creates a dashboard view with the default date range.
func NewDashboard(api API) *Dashboard {
	start, end := DashboardRange(time.Now())
	return &Dashboard{api: api, StartDate: start, EndDate: end}
}

// Load fetches the transaction list and summary in parallel, leaving the
// loading state only once both are done. A failed fetch resets the page to
// an empty neutral state; there is no retry. Responses from a load that has
// since been superseded are discarded.
func (d *Dashboard) Load(ctx context.Context) error {
	token := d.fetch.Begin()
	d.Loading = true

	filter := domain.TransactionFilter{
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		TargetCurrency: d.TargetCurrency,
	}

	var (
		page    *domain.TransactionPage
		summary *domain.Summary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = d.api.ListTransactions(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = d.api.Summary(gctx, d.StartDate, d.EndDate, d.TargetCurrency)
		return err
	})
	err := g.Wait()

	if !d.fetch.Commit(token) {
		return nil
	}
	d.Loading = false

	if err != nil {
		log.Debug().Err(err).Msg("dashboard load failed, showing empty state")
		d.Transactions = nil
		d.Summary = nil
		return err
	}
	d.Transactions = page.Results
	d.Summary = summary
	return nil
}
