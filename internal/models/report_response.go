package models

// Summary is the aggregate income/expense view over a date range
type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// CategoryExpense is one category's share of total expenses over a range
type CategoryExpense struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	CategoryIcon *string `json:"category_icon,omitempty"`
	Total        float64 `json:"total"`
	Percentage   float64 `json:"percentage"` // Of the expense grand total, rounded to 1 decimal
}

// MonthlyTrend is one calendar month's aggregate in a trend series
type MonthlyTrend struct {
	Month   string  `json:"month"` // "YYYY-MM"
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}
