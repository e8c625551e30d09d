package db

import (
	"context"
	"fmt"

	"github.com/ddebortoli/darwin-ia-challenge/models"
)

// InsertExpense writes one expense row and returns it with its generated id
// and timestamp. The single INSERT commits atomically; on any error no row
// is written.
func (s *Store) InsertExpense(ctx context.Context, userID int64, description string, amount float64, category models.Category) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, description, amount, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, added_at
	`
	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Category:    category,
	}
	err := s.conn.QueryRowContext(ctx, query, userID, description, amount, string(category)).
		Scan(&expense.ID, &expense.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("error saving expense for user %d: %w", userID, err)
	}
	return expense, nil
}

// ListExpenses returns a user's expenses, newest first. Reads join through
// the owning user so results are always scoped to one external id.
func (s *Store) ListExpenses(ctx context.Context, externalID string, limit int) ([]models.Expense, error) {
	query := `
		SELECT e.id, e.user_id, e.description, e.amount, e.category, e.added_at
		FROM expenses e
		JOIN users u ON e.user_id = u.id
		WHERE u.external_id = $1
		ORDER BY e.added_at DESC
		LIMIT $2
	`
	rows, err := s.conn.QueryContext(ctx, query, externalID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing expenses for user %s: %w", externalID, err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("error scanning expense row: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}

// Stats aggregates a user's expenses per category plus overall totals.
func (s *Store) Stats(ctx context.Context, externalID string) (*models.StatsSummary, error) {
	query := `
		SELECT e.category, COUNT(*), COALESCE(SUM(e.amount), 0)
		FROM expenses e
		JOIN users u ON e.user_id = u.id
		WHERE u.external_id = $1
		GROUP BY e.category
		ORDER BY SUM(e.amount) DESC
	`
	rows, err := s.conn.QueryContext(ctx, query, externalID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating expenses for user %s: %w", externalID, err)
	}
	defer rows.Close()

	stats := &models.StatsSummary{Categories: make(map[string]models.CategoryStat)}
	for rows.Next() {
		var category string
		var stat models.CategoryStat
		if err := rows.Scan(&category, &stat.Count, &stat.Total); err != nil {
			return nil, fmt.Errorf("error scanning stats row: %w", err)
		}
		stats.TotalExpenses += stat.Count
		stats.TotalAmount += stat.Total
		stats.Categories[category] = stat
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stats rows: %w", err)
	}
	return stats, nil
}
