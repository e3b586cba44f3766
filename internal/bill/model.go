package bill

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill represents a restaurant or store bill belonging to a group
type Bill struct {
	ID         string    `json:"id"`
	GroupID    string    `json:"group_id"`
	PayerID    *string   `json:"payer_id"`
	UploadedBy *string   `json:"uploaded_by"`
	BillDate   time.Time `json:"bill_date"`
	CreatedAt  time.Time `json:"created_at"`
}

// Item is a charge line on a bill together with its voters
type Item struct {
	ID         string          `json:"id"`
	BillID     string          `json:"bill_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	IsTaxOrTip bool            `json:"is_tax_or_tip"`
}
