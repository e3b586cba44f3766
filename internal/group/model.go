package group

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group represents a group of users splitting bills together
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Membership represents a user's membership in a group
type Membership struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

// Member is a group member with user details, populated via JOIN
type Member struct {
	MembershipID string `json:"membership_id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
}

// BillSummary is a bill in a group's listing, with the summed item total
type BillSummary struct {
	ID          string
	PayerID     *string
	UploadedBy  *string
	BillDate    time.Time
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
}
