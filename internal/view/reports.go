package view

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"ekstre/internal/domain"
)

// Reports is the summary page: one aggregated report for a date range, with
// an optional target currency for server-side conversion.
type Reports struct {
	api   API
	fetch Fetcher

	StartDate      domain.Date
	EndDate        domain.Date
	TargetCurrency string

	Summary *domain.Summary
	Loading bool
}

// NewReports creates the reports view, defaulting to the last twelve months
// through today.
func NewReports(api API) *Reports {
	start, end := TransactionsRange(time.Now())
	return &Reports{api: api, StartDate: start, EndDate: end}
}

// Load fetches a fresh summary snapshot. Stale responses are discarded and
// failures degrade to the empty state.
func (r *Reports) Load(ctx context.Context) error {
	token := r.fetch.Begin()
	r.Loading = true

	summary, err := r.api.Summary(ctx, r.StartDate, r.EndDate, r.TargetCurrency)

	if !r.fetch.Commit(token) {
		return nil
	}
	r.Loading = false

	if err != nil {
		log.Debug().Err(err).Msg("report load failed, showing empty state")
		r.Summary = nil
		return err
	}
	r.Summary = summary
	return nil
}
