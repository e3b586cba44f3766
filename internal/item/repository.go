package item

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles item and vote data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new item repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// BillExists reports whether the bill is present
func (r *Repository) BillExists(ctx context.Context, billID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bills WHERE id = $1)`, billID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check bill: %w", err)
	}
	return exists, nil
}

// Create inserts a new item with a fresh UUID
func (r *Repository) Create(ctx context.Context, req *CreateItemRequest) (*Item, error) {
	query := `
		INSERT INTO items (id, bill_id, name, price, is_tax_or_tip)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, bill_id, name, price, is_tax_or_tip
	`

	item := &Item{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		req.BillID,
		req.Name,
		req.Price,
		req.IsTaxOrTip,
	).Scan(
		&item.ID,
		&item.BillID,
		&item.Name,
		&item.Price,
		&item.IsTaxOrTip,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// GetByID retrieves an item by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Item, error) {
	query := `SELECT id, bill_id, name, price, is_tax_or_tip FROM items WHERE id = $1`

	item := &Item{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.BillID,
		&item.Name,
		&item.Price,
		&item.IsTaxOrTip,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// Update modifies the provided item fields
func (r *Repository) Update(ctx context.Context, id string, req *UpdateItemRequest) (*Item, error) {
	query := `
		UPDATE items SET
			name = COALESCE($2, name),
			price = COALESCE($3, price),
			is_tax_or_tip = COALESCE($4, is_tax_or_tip)
		WHERE id = $1
		RETURNING id, bill_id, name, price, is_tax_or_tip
	`

	item := &Item{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Price, req.IsTaxOrTip).Scan(
		&item.ID,
		&item.BillID,
		&item.Name,
		&item.Price,
		&item.IsTaxOrTip,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	return item, nil
}

// Delete removes an item and all its votes
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE item_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete item votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// ToggleVote upserts the user's vote on an item
func (r *Repository) ToggleVote(ctx context.Context, itemID, userID string, ate bool) (*Vote, error) {
	query := `
		INSERT INTO votes (id, item_id, user_id, ate)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id, user_id) DO UPDATE SET ate = EXCLUDED.ate
		RETURNING id, item_id, user_id, ate
	`

	vote := &Vote{}
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), itemID, userID, ate).Scan(
		&vote.ID,
		&vote.ItemID,
		&vote.UserID,
		&vote.Ate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle vote: %w", err)
	}

	return vote, nil
}
