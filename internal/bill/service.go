package bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/splitbuddy/splitbuddy/internal/bill/split"
	"github.com/splitbuddy/splitbuddy/internal/receipt"
)

var (
	ErrBillNotFound  = errors.New("bill not found")
	ErrGroupNotFound = errors.New("group not found")
	ErrNoPayer       = errors.New("bill has no payer assigned")
	ErrInvalidDate   = errors.New("bill_date must be in YYYY-MM-DD format")
	ErrNothingToDo   = errors.New("no fields to update")
)

// voterFetchLimit bounds concurrent voter queries per split computation
const voterFetchLimit = 8

// Service handles bill business logic
type Service struct {
	repo      *Repository
	extractor receipt.Extractor
}

// NewService creates a new bill service
func NewService(repo *Repository, extractor receipt.Extractor) *Service {
	return &Service{repo: repo, extractor: extractor}
}

// Create creates a bill after verifying its group exists
func (s *Service) Create(ctx context.Context, req *CreateBillRequest) (*Bill, error) {
	exists, err := s.repo.GroupExists(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	billDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.BillDate != "" {
		billDate, err = time.Parse("2006-01-02", req.BillDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
	}

	return s.repo.Create(ctx, req.GroupID, req.PayerID, req.UploadedBy, billDate)
}

// GetByID retrieves a bill by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Bill, error) {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

// Update modifies the payer or date of a bill
func (s *Service) Update(ctx context.Context, id string, req *UpdateBillRequest) (*Bill, error) {
	if req.PayerID == nil && req.BillDate == nil {
		return nil, ErrNothingToDo
	}

	var billDate *time.Time
	if req.BillDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.BillDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		billDate = &parsed
	}

	bill, err := s.repo.Update(ctx, id, req.PayerID, billDate)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	return bill, nil
}

// Delete removes a bill with all its items and votes
func (s *Service) Delete(ctx context.Context, id string) error {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return ErrBillNotFound
	}
	return s.repo.Delete(ctx, id)
}

// GetItems returns a bill's items, each with the users who ate it
func (s *Service) GetItems(ctx context.Context, billID string) ([]ItemWithVotesResponse, error) {
	bill, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}

	items, err := s.repo.GetItems(ctx, billID)
	if err != nil {
		return nil, err
	}

	voters, err := s.fetchVoters(ctx, items)
	if err != nil {
		return nil, err
	}

	result := make([]ItemWithVotesResponse, len(items))
	for i, item := range items {
		v := voters[i]
		if v == nil {
			v = []string{}
		}
		result[i] = ItemWithVotesResponse{
			ID:         item.ID,
			Name:       item.Name,
			Price:      item.Price.InexactFloat64(),
			IsTaxOrTip: item.IsTaxOrTip,
			Voters:     v,
		}
	}
	return result, nil
}

// GetSplit computes per-member amounts for a bill based on recorded votes
func (s *Service) GetSplit(ctx context.Context, billID string) (*split.SplitResponse, error) {
	bill, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, ErrBillNotFound
	}
	if bill.PayerID == nil {
		return nil, ErrNoPayer
	}

	items, err := s.repo.GetItems(ctx, billID)
	if err != nil {
		return nil, err
	}

	voters, err := s.fetchVoters(ctx, items)
	if err != nil {
		return nil, err
	}

	splitItems := make([]split.Item, len(items))
	votes := make(map[string][]string, len(items))
	for i, item := range items {
		splitItems[i] = split.Item{
			ID:         item.ID,
			Price:      item.Price,
			IsTaxOrTip: item.IsTaxOrTip,
		}
		votes[item.ID] = voters[i]
	}

	result, err := split.ComputeBillSplit(splitItems, votes, *bill.PayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute split: %w", err)
	}
	return result.ToResponse(), nil
}

// fetchVoters loads each item's voters concurrently, preserving item order
func (s *Service) fetchVoters(ctx context.Context, items []Item) ([][]string, error) {
	voters := make([][]string, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(voterFetchLimit)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			v, err := s.repo.GetItemVoters(gctx, item.ID)
			if err != nil {
				return err
			}
			voters[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return voters, nil
}

// ProcessImage extracts line items from a receipt image and creates a bill
// from them, recording tax and tip as flagged items
func (s *Service) ProcessImage(ctx context.Context, groupID string, uploadedBy *string, imageData []byte) (*ProcessImageResponse, error) {
	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrGroupNotFound
	}

	mimeType, err := receipt.ValidateImage(imageData)
	if err != nil {
		return nil, err
	}

	extracted, err := s.extractor.Extract(ctx, imageData, mimeType)
	if err != nil {
		return nil, err
	}

	var lines []lineItem
	total := decimal.Zero
	for _, it := range extracted.Items {
		if it.Price.IsNegative() {
			continue
		}
		lines = append(lines, lineItem{name: it.Name, price: it.Price, isTaxOrTip: it.IsTaxOrTip})
		total = total.Add(it.Price)
	}
	if extracted.TaxAmount.IsPositive() {
		lines = append(lines, lineItem{name: "Tax", price: extracted.TaxAmount, isTaxOrTip: true})
		total = total.Add(extracted.TaxAmount)
	}
	if extracted.TipAmount.IsPositive() {
		lines = append(lines, lineItem{name: "Tip", price: extracted.TipAmount, isTaxOrTip: true})
		total = total.Add(extracted.TipAmount)
	}
	if len(lines) == 0 {
		return nil, receipt.ErrEmptyReceipt
	}

	billDate := time.Now().UTC().Truncate(24 * time.Hour)
	bill, err := s.repo.CreateWithItems(ctx, groupID, uploadedBy, billDate, lines)
	if err != nil {
		return nil, err
	}

	return &ProcessImageResponse{
		Bill:           bill.ToResponse(),
		RestaurantName: extracted.RestaurantName,
		ItemCount:      len(lines),
		TotalAmount:    total.InexactFloat64(),
	}, nil
}
