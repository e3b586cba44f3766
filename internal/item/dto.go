package item

import "github.com/shopspring/decimal"

// CreateItemRequest represents the request body for creating an item
type CreateItemRequest struct {
	BillID     string          `json:"bill_id" validate:"required,uuid"`
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	Price      decimal.Decimal `json:"price"`
	IsTaxOrTip bool            `json:"is_tax_or_tip"`
}

// UpdateItemRequest represents the request body for updating an item
type UpdateItemRequest struct {
	Name       *string          `json:"name,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	IsTaxOrTip *bool            `json:"is_tax_or_tip,omitempty"`
}

// ToggleVoteRequest marks whether a user ate an item
type ToggleVoteRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Ate    *bool  `json:"ate,omitempty"` // defaults to true
}

// ItemResponse represents the response for a single item
type ItemResponse struct {
	ID         string  `json:"id"`
	BillID     string  `json:"bill_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	IsTaxOrTip bool    `json:"is_tax_or_tip"`
}

// VoteResponse represents a recorded vote
type VoteResponse struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
	Ate    bool   `json:"ate"`
}

// ToResponse converts an Item model to an ItemResponse DTO
func (i *Item) ToResponse() *ItemResponse {
	return &ItemResponse{
		ID:         i.ID,
		BillID:     i.BillID,
		Name:       i.Name,
		Price:      i.Price.InexactFloat64(),
		IsTaxOrTip: i.IsTaxOrTip,
	}
}

// ToResponse converts a Vote model to a VoteResponse DTO
func (v *Vote) ToResponse() *VoteResponse {
	return &VoteResponse{
		ID:     v.ID,
		ItemID: v.ItemID,
		UserID: v.UserID,
		Ate:    v.Ate,
	}
}
