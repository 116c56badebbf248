package view

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"ekstre/internal/domain"
)

// TransactionsRange is the listing page's default window: the first day of
// the month twelve months back through today.
func TransactionsRange(now time.Time) (domain.Date, domain.Date) {
	start := time.Date(now.Year(), now.Month()-12, 1, 0, 0, 0, 0, time.UTC)
	return domain.NewDate(start), domain.NewDate(now)
}

// Transactions is the filterable listing page. The category input is
// debounced: keystrokes land in a transient value, and only the final value
// of a burst reaches the filter and triggers a reload.
type Transactions struct {
	api      API
	fetch    Fetcher
	debounce *Debouncer

	Filter  domain.TransactionFilter
	Items   []domain.Transaction
	Count   int
	Loading bool

	// OnFilterChange runs after a debounced category value lands in the
	// filter; the page uses it to reload.
	OnFilterChange func()
}

// NewTransactions creates the listing view with the default date range.
func NewTransactions(api API) *Transactions {
	start, end := TransactionsRange(time.Now())
	t := &Transactions{
		api: api,
		Filter: domain.TransactionFilter{
			StartDate: start,
			EndDate:   end,
		},
	}
	t.debounce = NewDebouncer(DefaultDebounce, t.setCategory)
	return t
}

// SetCategoryInput records one keystroke of the category filter. The value
// propagates into the filter only after the quiet period.
func (t *Transactions) SetCategoryInput(value string) {
	t.debounce.Set(value)
}

// FlushCategoryInput propagates a pending category value immediately.
func (t *Transactions) FlushCategoryInput() {
	t.debounce.Flush()
}

func (t *Transactions) setCategory(value string) {
	t.Filter.Category = value
	if t.OnFilterChange != nil {
		t.OnFilterChange()
	}
}

// Load fetches the list with the current filter. Stale responses are
// discarded; a failed fetch leaves an empty list rather than an error page.
func (t *Transactions) Load(ctx context.Context) error {
	token := t.fetch.Begin()
	t.Loading = true

	page, err := t.api.ListTransactions(ctx, t.Filter)

	if !t.fetch.Commit(token) {
		return nil
	}
	t.Loading = false

	if err != nil {
		log.Debug().Err(err).Msg("transaction load failed, showing empty state")
		t.Items = nil
		t.Count = 0
		return err
	}
	t.Items = page.Results
	t.Count = page.Count
	return nil
}
