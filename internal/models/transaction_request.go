package models

import "time"

// CreateTransactionRequest represents the request body for creating a transaction
type CreateTransactionRequest struct {
	Amount      float64    `json:"amount" binding:"required,gt=0"`
	Type        string     `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	CategoryID  string     `json:"category_id" binding:"required,uuid"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"` // Defaults to now when omitted
}

// UpdateTransactionRequest represents a partial update; only supplied fields change
type UpdateTransactionRequest struct {
	Amount      *float64   `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Type        *string    `json:"type,omitempty" binding:"omitempty,oneof=INCOME EXPENSE"`
	CategoryID  *string    `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// TransactionFilter narrows transaction list queries. All fields optional.
type TransactionFilter struct {
	Type       string
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
