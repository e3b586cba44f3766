package vote

// Vote records that a user ate (or explicitly did not eat) an item
type Vote struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
	Ate    bool   `json:"ate"`
}
