package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
)

// GroupRepo implements ports.GroupRepository.
type GroupRepo struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.GroupRepository = (*GroupRepo)(nil)

const groupColumns = "id, name, description, creator_id, event_id, invite_code, max_members, created_at, updated_at"

// Save upserts the group and rewrites its membership links in one
// transaction.
func (r *GroupRepo) Save(ctx context.Context, g *domain.Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (id, name, description, creator_id, event_id, invite_code, max_members, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			event_id=excluded.event_id,
			invite_code=excluded.invite_code,
			max_members=excluded.max_members,
			updated_at=excluded.updated_at;
	`
	eventID := sql.NullString{String: g.EventID, Valid: g.EventID != ""}
	if _, err := tx.ExecContext(ctx, query, g.ID, g.Name, g.Description, g.CreatorID, eventID, g.InviteCode, g.MaxMembers, g.CreatedAt, g.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save group: %w", err)
	}

	if err := replaceLinks(ctx, tx, "group_members", "group_id", "user_id", g.ID, g.MemberIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// GetByID loads one group by id.
func (r *GroupRepo) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	return r.groupBy(ctx, "id = ?", id)
}

// GetByInviteCode loads one group by invite code.
func (r *GroupRepo) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	return r.groupBy(ctx, "invite_code = ?", code)
}

func (r *GroupRepo) groupBy(ctx context.Context, where string, arg any) (*domain.Group, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+groupColumns+" FROM groups WHERE "+where, arg)
	group, err := scanGroup(row)
	if err != nil {
		return nil, err
	}

	group.MemberIDs, err = linkedIDs(ctx, r.db, "group_members", "group_id", "user_id", group.ID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListByCreator loads the groups a user created.
func (r *GroupRepo) ListByCreator(ctx context.Context, creatorID string) ([]*domain.Group, error) {
	return r.listGroups(ctx, "SELECT "+groupColumns+" FROM groups WHERE creator_id = ?", creatorID)
}

// ListByEvent loads the groups attached to an event.
func (r *GroupRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Group, error) {
	return r.listGroups(ctx, "SELECT "+groupColumns+" FROM groups WHERE event_id = ?", eventID)
}

// ListByMember loads the groups a user belongs to.
func (r *GroupRepo) ListByMember(ctx context.Context, userID string) ([]*domain.Group, error) {
	query := "SELECT " + groupColumns + ` FROM groups
		JOIN group_members gm ON gm.group_id = groups.id
		WHERE gm.user_id = ?`
	return r.listGroups(ctx, query, userID)
}

// ListAll loads every group.
func (r *GroupRepo) ListAll(ctx context.Context) ([]*domain.Group, error) {
	return r.listGroups(ctx, "SELECT "+groupColumns+" FROM groups ORDER BY created_at ASC")
}

func (r *GroupRepo) listGroups(ctx context.Context, query string, args ...any) ([]*domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	defer rows.Close()

	groups := []*domain.Group{}
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		group.MemberIDs, err = linkedIDs(ctx, r.db, "group_members", "group_id", "user_id", group.ID)
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// ExistsByNameAndEvent reports whether an event already has a group
// with this name.
func (r *GroupRepo) ExistsByNameAndEvent(ctx context.Context, name, eventID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM groups WHERE name = ? AND event_id = ?", name, eventID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check group name: %w", err)
	}
	return n > 0, nil
}

// ExistsByInviteCode reports whether an invite code is already taken.
func (r *GroupRepo) ExistsByInviteCode(ctx context.Context, code string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM groups WHERE invite_code = ?", code).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check invite code: %w", err)
	}
	return n > 0, nil
}

// Delete removes a group by id.
func (r *GroupRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGroup(row rowScanner) (*domain.Group, error) {
	var group domain.Group
	var description sql.NullString
	var eventID sql.NullString
	if err := row.Scan(&group.ID, &group.Name, &description, &group.CreatorID, &eventID, &group.InviteCode, &group.MaxMembers, &group.CreatedAt, &group.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan group: %w", err)
	}
	if description.Valid {
		group.Description = description.String
	}
	if eventID.Valid {
		group.EventID = eventID.String
	}
	return &group, nil
}
