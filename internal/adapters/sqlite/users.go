package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.UserRepository = (*UserRepo)(nil)

const userColumns = "id, provider_user_id, name, email, picture, created_at, updated_at"

// Save upserts the user and rewrites their group links in one
// transaction.
func (r *UserRepo) Save(ctx context.Context, u *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (id, provider_user_id, name, email, picture, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			email=excluded.email,
			picture=excluded.picture,
			updated_at=excluded.updated_at;
	`
	if _, err := tx.ExecContext(ctx, query, u.ID, u.ProviderUserID, u.Name, u.Email, u.Picture, u.CreatedAt, u.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	if err := replaceLinks(ctx, tx, "user_groups", "user_id", "group_id", u.ID, u.GroupIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// GetByID loads one user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.userBy(ctx, "id = ?", id)
}

// GetByProviderUserID loads one user by identity-provider subject.
func (r *UserRepo) GetByProviderUserID(ctx context.Context, providerUserID string) (*domain.User, error) {
	return r.userBy(ctx, "provider_user_id = ?", providerUserID)
}

// GetByEmail loads one user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.userBy(ctx, "email = ?", email)
}

func (r *UserRepo) userBy(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	user.GroupIDs, err = linkedIDs(ctx, r.db, "user_groups", "user_id", "group_id", user.ID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListByGroup loads the users belonging to a group.
func (r *UserRepo) ListByGroup(ctx context.Context, groupID string) ([]*domain.User, error) {
	query := "SELECT " + userColumns + ` FROM users
		JOIN user_groups ug ON ug.user_id = users.id
		WHERE ug.group_id = ?`
	return r.listUsers(ctx, query, groupID)
}

// ListAll loads every user.
func (r *UserRepo) ListAll(ctx context.Context) ([]*domain.User, error) {
	return r.listUsers(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at ASC")
}

func (r *UserRepo) listUsers(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	for _, user := range users {
		user.GroupIDs, err = linkedIDs(ctx, r.db, "user_groups", "user_id", "group_id", user.ID)
		if err != nil {
			return nil, err
		}
	}
	return users, nil
}

// Delete removes a user by id.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var picture sql.NullString
	if err := row.Scan(&user.ID, &user.ProviderUserID, &user.Name, &user.Email, &picture, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if picture.Valid {
		user.Picture = picture.String
	}
	return &user, nil
}
