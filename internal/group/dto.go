package group

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// GroupResponse represents the response for a single group
type GroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AddMemberRequest represents the request body for adding a user to a group
type AddMemberRequest struct {
	GroupID string `json:"group_id" validate:"required,uuid"`
	UserID  string `json:"user_id" validate:"required,uuid"`
}

// MembershipResponse represents the response for a group membership
type MembershipResponse struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

// BillSummaryResponse is one entry in a group's bill listing
type BillSummaryResponse struct {
	ID          string  `json:"id"`
	PayerID     *string `json:"payer_id"`
	UploadedBy  *string `json:"uploaded_by"`
	BillDate    string  `json:"bill_date"`
	CreatedAt   string  `json:"created_at"`
	TotalAmount float64 `json:"total_amount"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:   g.ID,
		Name: g.Name,
	}
}

// ToResponse converts a Membership model to a MembershipResponse DTO
func (m *Membership) ToResponse() *MembershipResponse {
	return &MembershipResponse{
		ID:      m.ID,
		GroupID: m.GroupID,
		UserID:  m.UserID,
	}
}

// ToResponse converts a BillSummary to its listing DTO
func (b *BillSummary) ToResponse() *BillSummaryResponse {
	return &BillSummaryResponse{
		ID:          b.ID,
		PayerID:     b.PayerID,
		UploadedBy:  b.UploadedBy,
		BillDate:    b.BillDate.Format("2006-01-02"),
		CreatedAt:   b.CreatedAt.Format("2006-01-02T15:04:05Z"),
		TotalAmount: b.TotalAmount.InexactFloat64(),
	}
}
