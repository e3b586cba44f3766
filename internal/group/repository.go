package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles group and membership data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group with a fresh UUID
func (r *Repository) Create(ctx context.Context, name string) (*Group, error) {
	query := `
		INSERT INTO groups (id, name)
		VALUES ($1, $2)
		RETURNING id, name
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), name).Scan(&group.ID, &group.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Group, error) {
	query := `SELECT id, name FROM groups WHERE id = $1`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&group.ID, &group.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// GetMembers retrieves all members of a group with user details
func (r *Repository) GetMembers(ctx context.Context, groupID string) ([]*Member, error) {
	query := `
		SELECT gm.id, u.id, u.name, u.email
		FROM group_members gm
		JOIN users u ON gm.user_id = u.id
		WHERE gm.group_id = $1
		ORDER BY u.name
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(&member.MembershipID, &member.UserID, &member.Name, &member.Email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}

// GetBills retrieves all bills for a group with their summed item totals
func (r *Repository) GetBills(ctx context.Context, groupID string) ([]*BillSummary, error) {
	query := `
		SELECT b.id, b.payer_id, b.uploaded_by, b.bill_date, b.created_at,
		       COALESCE(SUM(i.price), 0)
		FROM bills b
		LEFT JOIN items i ON i.bill_id = b.id
		WHERE b.group_id = $1
		GROUP BY b.id, b.payer_id, b.uploaded_by, b.bill_date, b.created_at
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group bills: %w", err)
	}
	defer rows.Close()

	var bills []*BillSummary
	for rows.Next() {
		bill := &BillSummary{}
		if err := rows.Scan(
			&bill.ID,
			&bill.PayerID,
			&bill.UploadedBy,
			&bill.BillDate,
			&bill.CreatedAt,
			&bill.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// AddMember inserts a group membership
func (r *Repository) AddMember(ctx context.Context, groupID, userID string) (*Membership, error) {
	query := `
		INSERT INTO group_members (id, group_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, group_id, user_id
	`

	membership := &Membership{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), groupID, userID).Scan(
		&membership.ID,
		&membership.GroupID,
		&membership.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add group member: %w", err)
	}

	return membership, nil
}

// GetMember retrieves a membership by its ID
func (r *Repository) GetMember(ctx context.Context, membershipID string) (*Membership, error) {
	query := `SELECT id, group_id, user_id FROM group_members WHERE id = $1`

	membership := &Membership{}
	err := r.db.QueryRowContext(ctx, query, membershipID).Scan(
		&membership.ID,
		&membership.GroupID,
		&membership.UserID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group member: %w", err)
	}

	return membership, nil
}

// HasMember reports whether the user already belongs to the group
func (r *Repository) HasMember(ctx context.Context, groupID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM group_members WHERE group_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

// RemoveMember deletes a membership, reporting whether it existed
func (r *Repository) RemoveMember(ctx context.Context, membershipID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE id = $1`, membershipID)
	if err != nil {
		return false, fmt.Errorf("failed to remove group member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check removal: %w", err)
	}
	return affected > 0, nil
}
