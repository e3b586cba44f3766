package bill

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository handles bill data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new bill repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GroupExists reports whether the group is present
func (r *Repository) GroupExists(ctx context.Context, groupID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`, groupID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return exists, nil
}

// Create inserts a new bill with a fresh UUID
func (r *Repository) Create(ctx context.Context, groupID string, payerID, uploadedBy *string, billDate time.Time) (*Bill, error) {
	query := `
		INSERT INTO bills (id, group_id, payer_id, uploaded_by, bill_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, payer_id, uploaded_by, bill_date, created_at
	`

	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		groupID,
		payerID,
		uploadedBy,
		billDate,
	).Scan(
		&bill.ID,
		&bill.GroupID,
		&bill.PayerID,
		&bill.UploadedBy,
		&bill.BillDate,
		&bill.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return bill, nil
}

// GetByID retrieves a bill by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Bill, error) {
	query := `SELECT id, group_id, payer_id, uploaded_by, bill_date, created_at FROM bills WHERE id = $1`

	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bill.ID,
		&bill.GroupID,
		&bill.PayerID,
		&bill.UploadedBy,
		&bill.BillDate,
		&bill.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return bill, nil
}

// Update modifies the provided bill fields
func (r *Repository) Update(ctx context.Context, id string, payerID *string, billDate *time.Time) (*Bill, error) {
	query := `
		UPDATE bills SET
			payer_id = COALESCE($2, payer_id),
			bill_date = COALESCE($3, bill_date)
		WHERE id = $1
		RETURNING id, group_id, payer_id, uploaded_by, bill_date, created_at
	`

	bill := &Bill{}
	err := r.db.QueryRowContext(ctx, query, id, payerID, billDate).Scan(
		&bill.ID,
		&bill.GroupID,
		&bill.PayerID,
		&bill.UploadedBy,
		&bill.BillDate,
		&bill.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return bill, nil
}

// Delete removes a bill with all its items and votes
func (r *Repository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	queries := []string{
		`DELETE FROM votes WHERE item_id IN (SELECT id FROM items WHERE bill_id = $1)`,
		`DELETE FROM items WHERE bill_id = $1`,
		`DELETE FROM bills WHERE id = $1`,
	}
	for _, q := range queries {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// GetItems returns the items on a bill in insertion order
func (r *Repository) GetItems(ctx context.Context, billID string) ([]Item, error) {
	query := `
		SELECT id, bill_id, name, price, is_tax_or_tip
		FROM items
		WHERE bill_id = $1
		ORDER BY name, id
	`

	rows, err := r.db.QueryContext(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.BillID, &item.Name, &item.Price, &item.IsTaxOrTip); err != nil {
			return nil, fmt.Errorf("failed to scan bill item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetItemVoters returns the IDs of users who ate an item, oldest vote first
func (r *Repository) GetItemVoters(ctx context.Context, itemID string) ([]string, error) {
	query := `
		SELECT user_id
		FROM votes
		WHERE item_id = $1 AND ate = true
		ORDER BY created_at, user_id
	`

	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item voters: %w", err)
	}
	defer rows.Close()

	var voters []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, userID)
	}

	return voters, rows.Err()
}

// lineItem is the insert shape used by CreateWithItems
type lineItem struct {
	name       string
	price      decimal.Decimal
	isTaxOrTip bool
}

// CreateWithItems inserts a bill and its line items in one transaction
func (r *Repository) CreateWithItems(ctx context.Context, groupID string, uploadedBy *string, billDate time.Time, items []lineItem) (*Bill, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin bill insert: %w", err)
	}
	defer tx.Rollback()

	billQuery := `
		INSERT INTO bills (id, group_id, payer_id, uploaded_by, bill_date)
		VALUES ($1, $2, NULL, $3, $4)
		RETURNING id, group_id, payer_id, uploaded_by, bill_date, created_at
	`

	bill := &Bill{}
	err = tx.QueryRowContext(ctx, billQuery, uuid.NewString(), groupID, uploadedBy, billDate).Scan(
		&bill.ID,
		&bill.GroupID,
		&bill.PayerID,
		&bill.UploadedBy,
		&bill.BillDate,
		&bill.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	itemQuery := `INSERT INTO items (id, bill_id, name, price, is_tax_or_tip) VALUES ($1, $2, $3, $4, $5)`
	for _, li := range items {
		if _, err := tx.ExecContext(ctx, itemQuery, uuid.NewString(), bill.ID, li.name, li.price, li.isTaxOrTip); err != nil {
			return nil, fmt.Errorf("failed to create bill item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit bill insert: %w", err)
	}
	return bill, nil
}
