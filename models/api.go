package models

import "time"

// ProcessRequest is the body of POST /process-expense.
type ProcessRequest struct {
	ExternalUserID string `json:"external_user_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

// ProcessResponse is the result of processing one message. Category,
// Description and Amount are only present on success.
type ProcessResponse struct {
	Success     bool     `json:"success"`
	Category    *string  `json:"category,omitempty"`
	Description *string  `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Message     string   `json:"message"`
}

// ExpenseItem is one entry of GET /expenses/{external_user_id}.
type ExpenseItem struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	AddedAt     time.Time `json:"added_at"`
}

// ExpensesResponse wraps a user's recent expenses.
type ExpensesResponse struct {
	Expenses []ExpenseItem `json:"expenses"`
	Count    int           `json:"count"`
}

// CategoriesResponse lists the fixed category set.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// HealthResponse is the body of GET /health on both services.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}
