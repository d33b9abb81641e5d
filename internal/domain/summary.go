package domain

import "github.com/shopspring/decimal" // Fixed-point money amounts

// Summary aggregates every stored transaction
type Summary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`  // Sum of positive amounts
	TotalExpense decimal.Decimal `json:"totalExpense"` // Sum of absolute negative amounts
	Balance      decimal.Decimal `json:"balance"`      // Signed sum of all amounts
}
