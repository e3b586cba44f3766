package vote

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles vote data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new vote repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ItemExists reports whether the item is present
func (r *Repository) ItemExists(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`, itemID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check item: %w", err)
	}
	return exists, nil
}

// Exists reports whether the user already voted on the item
func (r *Repository) Exists(ctx context.Context, itemID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM votes WHERE item_id = $1 AND user_id = $2)`,
		itemID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return exists, nil
}

// Create inserts a new vote with a fresh UUID
func (r *Repository) Create(ctx context.Context, req *CreateVoteRequest) (*Vote, error) {
	query := `
		INSERT INTO votes (id, item_id, user_id, ate)
		VALUES ($1, $2, $3, $4)
		RETURNING id, item_id, user_id, ate
	`

	vote := &Vote{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), req.ItemID, req.UserID, req.Ate).Scan(
		&vote.ID,
		&vote.ItemID,
		&vote.UserID,
		&vote.Ate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	return vote, nil
}

// GetByID retrieves a vote by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Vote, error) {
	query := `SELECT id, item_id, user_id, ate FROM votes WHERE id = $1`

	vote := &Vote{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&vote.ID, &vote.ItemID, &vote.UserID, &vote.Ate)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return vote, nil
}

// Delete removes a vote, reporting whether it existed
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete vote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check deletion: %w", err)
	}
	return affected > 0, nil
}
