package entities

import "time"

// Transaction represents a single monetary event owned by a user
type Transaction struct {
	ID           string          `json:"id"` // UUID
	UserID       string          `json:"user_id"`
	CategoryID   string          `json:"category_id"`
	Amount       float64         `json:"amount"`
	Type         TransactionType `json:"type"`
	Description  *string         `json:"description,omitempty"`
	Date         time.Time       `json:"date"`
	CategoryName *string         `json:"category_name,omitempty"` // joined from categories on reads
	CategoryIcon *string         `json:"category_icon,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
