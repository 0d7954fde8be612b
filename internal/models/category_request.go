package models

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string  `json:"name" binding:"required,min=1"`
	Type string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Icon *string `json:"icon,omitempty"`
}
