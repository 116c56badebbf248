package api

import (
	"context"
	"net/url"

	"github.com/shopspring/decimal"

	"ekstre/internal/domain"
)

// Summary fetches the aggregated report for a date range.
func (c *Client) Summary(ctx context.Context, startDate, endDate domain.Date, targetCurrency string) (*domain.Summary, error) {
	query := url.Values{}
	query.Set("start_date", startDate.String())
	query.Set("end_date", endDate.String())
	if targetCurrency != "" {
		query.Set("target_currency", targetCurrency)
	}
	var summary domain.Summary
	if err := c.get(ctx, "/api/reports/summary/", query, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ConvertCurrency converts an amount server-side, at the given date's rate
// when date is non-empty and the latest rate otherwise.
func (c *Client) ConvertCurrency(ctx context.Context, amount decimal.Decimal, from, to, date string) (*domain.Conversion, error) {
	query := url.Values{}
	query.Set("amount", amount.String())
	query.Set("from_currency", from)
	query.Set("to_currency", to)
	if date != "" {
		query.Set("date", date)
	}
	var conv domain.Conversion
	if err := c.get(ctx, "/api/reports/convert-currency/", query, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}
