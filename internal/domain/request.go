package domain

import (
	"time"         // Date parsing
	"unicode/utf8" // Length checks in characters

	"github.com/shopspring/decimal" // Fixed-point money amounts
	"gorm.io/datatypes"             // Calendar date column type
)

// Column limits
const (
	MaxCategoryLen = 100
	MaxNoteLen     = 400
)

// MsgRequiredFields is returned when txDate, category or amount is missing
const MsgRequiredFields = "txDate, category, amount are required"

// ValidationError is a client input error. Its message is safe to return to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// CreateTransactionRequest is the body of POST /api/transactions
type CreateTransactionRequest struct {
	TxDate   string   `json:"txDate"`   // Calendar date, YYYY-MM-DD
	Category string   `json:"category"` // Category label
	Amount   *float64 `json:"amount"`   // Must be a JSON number
	Note     *string  `json:"note"`     // Optional note
	Type     any      `json:"type"`     // Only "income" changes the sign
}

// ToTransaction validates the request and builds the row to insert, with the
// amount already signed.
func (r *CreateTransactionRequest) ToTransaction() (*Transaction, error) {
	if r.TxDate == "" || r.Category == "" || r.Amount == nil {
		return nil, &ValidationError{Message: MsgRequiredFields}
	}
	date, err := ParseTxDate(r.TxDate)
	if err != nil {
		return nil, &ValidationError{Message: "txDate must be a date (YYYY-MM-DD)"}
	}
	if utf8.RuneCountInString(r.Category) > MaxCategoryLen {
		return nil, &ValidationError{Message: "category must be at most 100 characters"}
	}
	var note *string
	if r.Note != nil && *r.Note != "" {
		if utf8.RuneCountInString(*r.Note) > MaxNoteLen {
			return nil, &ValidationError{Message: "note must be at most 400 characters"}
		}
		n := *r.Note
		note = &n
	}
	return &Transaction{
		TxDate:   datatypes.Date(date),
		Category: r.Category,
		Note:     note,
		Amount:   ApplySignConvention(decimal.NewFromFloat(*r.Amount), r.Type),
	}, nil
}

// ParseTxDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping only the date
func ParseTxDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
