// Package render turns already-fetched data into terminal output. It holds
// no logic of its own beyond formatting; empty inputs render explicit empty
// states instead of errors.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"ekstre/internal/domain"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

// Renderer writes formatted views to w.
type Renderer struct {
	w     io.Writer
	color bool
}

// New creates a renderer. color enables ANSI treatment of signed amounts.
func New(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) paint(s, color string) string {
	if !r.color {
		return s
	}
	return color + s + ansiReset
}

// signed renders an amount with explicit sign and positive/negative
// treatment: green with a leading + for zero or more, red with - below.
func (r *Renderer) signed(amount decimal.Decimal, currency string) string {
	text := fmt.Sprintf("%s %s", amount.StringFixed(2), currency)
	if amount.Sign() < 0 {
		return r.paint(text, ansiRed)
	}
	return r.paint("+"+text, ansiGreen)
}

// Transactions renders the listing table, or the empty state when there is
// nothing to show.
func (r *Renderer) Transactions(transactions []domain.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(r.w, "No transactions found. Upload a CSV statement to get started.")
		return
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tAMOUNT\tCONVERTED\tCATEGORY\tDESCRIPTION")
	for _, tx := range transactions {
		converted := "-"
		if tx.ConvertedAmount != nil && tx.ConvertedCurrency != nil {
			converted = fmt.Sprintf("%s %s", tx.ConvertedAmount.StringFixed(2), *tx.ConvertedCurrency)
		}
		category := tx.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tx.Date, r.signed(tx.Signed(), tx.Currency), converted, category, tx.Description)
	}
	tw.Flush()
}

// Transaction renders one transaction in full.
func (r *Renderer) Transaction(tx *domain.Transaction) {
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", tx.ID)
	fmt.Fprintf(tw, "Date:\t%s\n", tx.Date)
	fmt.Fprintf(tw, "Amount:\t%s\n", r.signed(tx.Signed(), tx.Currency))
	if tx.ConvertedAmount != nil && tx.ConvertedCurrency != nil {
		fmt.Fprintf(tw, "Converted:\t%s %s\n", tx.ConvertedAmount.StringFixed(2), *tx.ConvertedCurrency)
	}
	fmt.Fprintf(tw, "Type:\t%s\n", tx.Type)
	if tx.Category != "" {
		fmt.Fprintf(tw, "Category:\t%s\n", tx.Category)
	}
	fmt.Fprintf(tw, "Description:\t%s\n", tx.Description)
	tw.Flush()
}

// Summary renders the three report cards. The net cash flow carries the
// positive or negative treatment depending on its sign.
func (r *Renderer) Summary(summary *domain.Summary) {
	if summary == nil {
		fmt.Fprintln(r.w, "No summary available.")
		return
	}
	currency := summary.Currency
	if currency == "" {
		currency = "MIXED"
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total income:\t%s %s\n", summary.TotalIncome.StringFixed(2), currency)
	fmt.Fprintf(tw, "Total expense:\t%s %s\n", summary.TotalExpense.StringFixed(2), currency)
	fmt.Fprintf(tw, "Net cash flow:\t%s\n", r.signed(summary.NetCashFlow, currency))
	tw.Flush()
}

// TopCategories renders the expense breakdown as scaled bars.
func (r *Renderer) TopCategories(categories []domain.CategoryTotal) {
	if len(categories) == 0 {
		fmt.Fprintln(r.w, "No expense categories for this period.")
		return
	}

	max := decimal.Zero
	for _, c := range categories {
		if c.Amount.GreaterThan(max) {
			max = c.Amount
		}
	}

	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	for _, c := range categories {
		width := 0
		if max.Sign() > 0 {
			width = int(c.Amount.Div(max).Mul(decimal.NewFromInt(20)).IntPart())
		}
		fmt.Fprintf(tw, "%s\t%s\t(%d)\t%s\n",
			c.Category, c.Amount.StringFixed(2), c.Count, strings.Repeat("█", width))
	}
	tw.Flush()
}

// Conversion renders a currency-conversion result.
func (r *Renderer) Conversion(conv *domain.Conversion) {
	fmt.Fprintf(r.w, "%s %s = %s %s (rate %s, %s)\n",
		conv.Amount.StringFixed(2), conv.FromCurrency,
		conv.ConvertedAmount.StringFixed(2), conv.ToCurrency,
		conv.ExchangeRate.String(), conv.Date)
}

// UploadResult renders the import counts after an upload.
func (r *Renderer) UploadResult(result *domain.UploadResult) {
	fmt.Fprintf(r.w, "Imported: %d transactions\n", result.Imported())
	if result.Failed() > 0 {
		fmt.Fprintf(r.w, "Failed: %d rows\n", result.Failed())
	}
	if result.Message != "" {
		fmt.Fprintln(r.w, result.Message)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(r.w, "  %s\n", e)
	}
}

// Session renders who is logged in.
func (r *Renderer) Session(session domain.Session) {
	fmt.Fprintf(r.w, "Logged in as %s <%s>\n", session.User.Username, session.User.Email)
}
