package entities

import "time"

// TransactionType is the polarity of a category or transaction
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether the type is one of the two known polarities
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category represents a named bucket of a fixed polarity, owned by a user
type Category struct {
	ID        string          `json:"id"` // UUID
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Icon      *string         `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
