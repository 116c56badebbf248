package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeCredit TransactionType = "credit"
	TypeDebit  TransactionType = "debit"
)

// Date is a calendar date as the API serializes it (YYYY-MM-DD).
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Transaction is a single bank-statement entry as returned by the API.
// Transactions are read-only on the client; they are never mutated after
// decoding.
type Transaction struct {
	ID                int64            `json:"id"`
	Date              Date             `json:"date"`
	Amount            decimal.Decimal  `json:"amount"`
	Currency          string           `json:"currency"`
	ConvertedAmount   *decimal.Decimal `json:"converted_amount,omitempty"`
	ConvertedCurrency *string          `json:"converted_currency,omitempty"`
	Description       string           `json:"description"`
	Type              TransactionType  `json:"type"`
	Category          string           `json:"category"`
	CreatedAt         time.Time        `json:"created_at"`
}

// Signed returns the amount with debits negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionPage is one page of a transaction listing. The API normally
// returns the paginated envelope, but a bare array is accepted too.
type TransactionPage struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []Transaction `json:"results"`
}

func (p *TransactionPage) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var results []Transaction
		if err := json.Unmarshal(data, &results); err != nil {
			return err
		}
		p.Results = results
		p.Count = len(results)
		return nil
	}
	type page TransactionPage
	var inner page
	if err := json.Unmarshal(data, &inner); err != nil {
		return err
	}
	*p = TransactionPage(inner)
	return nil
}

// TransactionFilter holds the query parameters of a transaction listing.
// Zero-valued fields are omitted from the request.
type TransactionFilter struct {
	StartDate      Date
	EndDate        Date
	Type           TransactionType
	Currency       string
	Category       string
	TargetCurrency string
	Page           int
}

// Query encodes the filter using the API's parameter names.
func (f TransactionFilter) Query() url.Values {
	q := url.Values{}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.String())
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.String())
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Currency != "" {
		q.Set("currency", f.Currency)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.TargetCurrency != "" {
		q.Set("target_currency", f.TargetCurrency)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	return q
}
