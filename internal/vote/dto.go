package vote

// CreateVoteRequest represents the request body for recording a vote
type CreateVoteRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
	UserID string `json:"user_id" validate:"required,uuid"`
	Ate    bool   `json:"ate"`
}

// VoteResponse represents the response for a single vote
type VoteResponse struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
	Ate    bool   `json:"ate"`
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
