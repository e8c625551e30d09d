package models

import "time"

// User is a whitelisted account, keyed internally by ID and externally by
// the messaging platform's opaque user identifier.
type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Expense is a single recorded expense. Rows are immutable once written.
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    Category  `json:"category"`
	AddedAt     time.Time `json:"added_at"`
}

// CategoryStat is the per-category slice of a stats summary.
type CategoryStat struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// StatsSummary aggregates a user's expenses per category and overall.
type StatsSummary struct {
	TotalExpenses int                     `json:"total_expenses"`
	TotalAmount   float64                 `json:"total_amount"`
	Categories    map[string]CategoryStat `json:"categories"`
}
