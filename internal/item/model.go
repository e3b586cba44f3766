package item

import "github.com/shopspring/decimal"

// Item represents a single charge line on a bill
type Item struct {
	ID         string          `json:"id"`
	BillID     string          `json:"bill_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	IsTaxOrTip bool            `json:"is_tax_or_tip"`
}

// Vote records whether a user ate an item
type Vote struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
	Ate    bool   `json:"ate"`
}
