package bill

import "time"

// CreateBillRequest is the request payload for creating a bill
type CreateBillRequest struct {
	GroupID    string  `json:"group_id" validate:"required,uuid"`
	PayerID    *string `json:"payer_id,omitempty" validate:"omitempty,uuid"`
	UploadedBy *string `json:"uploaded_by,omitempty" validate:"omitempty,uuid"`
	BillDate   string  `json:"bill_date,omitempty" validate:"omitempty,datetime=2006-01-02"` // defaults to today
}

// UpdateBillRequest is the request payload for updating a bill
type UpdateBillRequest struct {
	PayerID  *string `json:"payer_id,omitempty" validate:"omitempty,uuid"`
	BillDate *string `json:"bill_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// BillResponse is the API representation of a bill
type BillResponse struct {
	ID         string  `json:"id"`
	GroupID    string  `json:"group_id"`
	PayerID    *string `json:"payer_id"`
	UploadedBy *string `json:"uploaded_by"`
	BillDate   string  `json:"bill_date"`
	CreatedAt  string  `json:"created_at"`
}

// ToResponse converts a bill to its API representation
func (b *Bill) ToResponse() *BillResponse {
	return &BillResponse{
		ID:         b.ID,
		GroupID:    b.GroupID,
		PayerID:    b.PayerID,
		UploadedBy: b.UploadedBy,
		BillDate:   b.BillDate.Format("2006-01-02"),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// ItemWithVotesResponse is a bill item together with the users who ate it
type ItemWithVotesResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      float64  `json:"price"`
	IsTaxOrTip bool     `json:"is_tax_or_tip"`
	Voters     []string `json:"voters"`
}

// ProcessImageResponse is returned after a receipt image has been analyzed
type ProcessImageResponse struct {
	Bill           *BillResponse `json:"bill"`
	RestaurantName string        `json:"restaurant_name"`
	ItemCount      int           `json:"item_count"`
	TotalAmount    float64       `json:"total_amount"`
}
