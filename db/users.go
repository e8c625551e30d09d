package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ddebortoli/darwin-ia-challenge/models"
)

// FindUser looks a user up by the platform's external identifier. It returns
// (nil, nil) when no such user exists; an error means the lookup itself
// failed, which callers must not confuse with "not whitelisted".
func (s *Store) FindUser(ctx context.Context, externalID string) (*models.User, error) {
	query := `
		SELECT id, external_id, created_at
		FROM users
		WHERE external_id = $1
	`
	user := &models.User{}
	err := s.conn.QueryRowContext(ctx, query, externalID).
		Scan(&user.ID, &user.ExternalID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up user %s: %w", externalID, err)
	}
	return user, nil
}
