package domain

import (
	"time" // Timestamps

	"github.com/shopspring/decimal" // Fixed-point money amounts
	"gorm.io/datatypes"             // Calendar date column type
	"gorm.io/gorm"                  // GORM hooks
)

// Transaction types derived from the sign of the amount
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

func init() {
	// Amounts are rendered as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction Model
type Transaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                      // Primary key
	TxDate    datatypes.Date  `gorm:"not null" json:"txDate"`                    // Calendar date supplied by the caller
	Category  string          `gorm:"size:100;not null" json:"category"`         // Category label
	Note      *string         `gorm:"size:400" json:"note"`                      // Optional note, NULL when absent
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"` // Negative for expense, positive for income
	CreatedAt time.Time       `gorm:"autoCreateTime;index" json:"createdAt"`     // Insert timestamp, listing sort key
	Type      string          `gorm:"-" json:"type"`                             // Derived from Amount, never stored
}

// TypeOf returns the transaction type implied by the sign of amount
func TypeOf(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return TypeExpense
	}
	return TypeIncome
}

// ApplySignConvention stores every amount as an expense unless the caller
// explicitly marked it as income. Only the exact string "income" flips the sign.
func ApplySignConvention(amount decimal.Decimal, typ any) decimal.Decimal {
	finalAmount := amount.Abs().Neg() // Expense by default
	if s, ok := typ.(string); ok && s == TypeIncome {
		finalAmount = amount.Abs()
	}
	return finalAmount.Round(2)
}

// AfterFind fills the derived type on every loaded row
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Type = TypeOf(t.Amount)
	return nil
}

// AfterCreate fills the derived type on the freshly inserted row
func (t *Transaction) AfterCreate(tx *gorm.DB) error {
	t.Type = TypeOf(t.Amount)
	return nil
}
