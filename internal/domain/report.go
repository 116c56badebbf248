package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one entry of the top-expense-category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Count    int             `json:"count"`
}

// Summary is the server-computed report for a date range. Each fetch is a
// fresh snapshot; the client never merges it with a previous one.
type Summary struct {
	TotalIncome          decimal.Decimal `json:"total_income"`
	TotalExpense         decimal.Decimal `json:"total_expense"`
	NetCashFlow          decimal.Decimal `json:"net_cash_flow"`
	Currency             string          `json:"currency"`
	TopExpenseCategories []CategoryTotal `json:"top_expense_categories"`
}

// Conversion is the result of a server-side currency conversion.
type Conversion struct {
	Amount          decimal.Decimal `json:"amount"`
	FromCurrency    string          `json:"from_currency"`
	ToCurrency      string          `json:"to_currency"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	Date            string          `json:"date"`
}
