package split

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BILL AGGREGATION
// Combines per-item shares and pooled tax/tip into per-user net positions
// =============================================================================

// Item is a single priced line on a bill. Tax and tip lines are flagged and
// pooled rather than voted on.
type Item struct {
	ID         string
	Price      decimal.Decimal
	IsTaxOrTip bool
}

// Result maps every involved user to their signed position: positive means
// the user owes the payer, negative means they are owed. The values always
// sum to zero.
type Result struct {
	PayerID string
	Totals  map[string]decimal.Decimal
}

// ComputeBillSplit calculates each user's net position for a bill.
//
// Every non-tax item's price is split cent-exactly among the users who voted
// for it; an item nobody voted for contributes nothing to anyone. Tax and tip
// lines are summed into one pool split among everyone who ate anything. The
// payer's position is the negation of everyone else's, which makes the
// zero-sum property hold by construction.
func ComputeBillSplit(items []Item, votes map[string][]string, payerID string) (*Result, error) {
	eaters := eaterSet(items, votes)
	if len(eaters) == 0 {
		// Nobody ate anything; the payer owes and is owed nothing.
		return &Result{
			PayerID: payerID,
			Totals:  map[string]decimal.Decimal{payerID: decimal.Zero},
		}, nil
	}

	totals := make(map[string]decimal.Decimal, len(eaters)+1)
	for _, uid := range eaters {
		totals[uid] = decimal.Zero
	}

	// Per-item shares, divided among each item's voters in vote order.
	taxTipPool := decimal.Zero
	for _, item := range items {
		if item.IsTaxOrTip {
			taxTipPool = taxTipPool.Add(item.Price)
			continue
		}
		voters := votes[item.ID]
		if len(voters) == 0 {
			continue
		}
		shares, err := SplitEqually(item.Price, len(voters))
		if err != nil {
			return nil, err
		}
		for i, uid := range voters {
			totals[uid] = totals[uid].Add(shares[i])
		}
	}

	// Pooled tax/tip, divided among the whole eater set.
	if taxTipPool.IsPositive() {
		shares, err := SplitEqually(taxTipPool, len(eaters))
		if err != nil {
			return nil, err
		}
		for i, uid := range eaters {
			totals[uid] = totals[uid].Add(shares[i])
		}
	}

	// Every total is a sum of cent-exact shares, so no further rounding can
	// move a value. The payer's position balances everyone else's exactly;
	// a payer outside the eater set is inserted here.
	owed := decimal.Zero
	for uid, amount := range totals {
		if uid != payerID {
			owed = owed.Add(amount)
		}
	}
	totals[payerID] = owed.Neg()

	sum := decimal.Zero
	for _, amount := range totals {
		sum = sum.Add(amount)
	}
	if sum.Abs().Cmp(cent) >= 0 {
		return nil, ErrUnbalanced
	}

	return &Result{PayerID: payerID, Totals: totals}, nil
}

// eaterSet returns every user who voted for at least one item, in first-seen
// order: items in input order, then voters in vote order. Vote entries whose
// item id matches no item still count toward the set and are folded in by
// sorted key so the ordering stays reproducible.
func eaterSet(items []Item, votes map[string][]string) []string {
	seen := make(map[string]bool)
	var eaters []string
	add := func(uids []string) {
		for _, uid := range uids {
			if !seen[uid] {
				seen[uid] = true
				eaters = append(eaters, uid)
			}
		}
	}

	itemIDs := make(map[string]bool, len(items))
	for _, item := range items {
		itemIDs[item.ID] = true
		add(votes[item.ID])
	}

	var orphaned []string
	for itemID := range votes {
		if !itemIDs[itemID] {
			orphaned = append(orphaned, itemID)
		}
	}
	sort.Strings(orphaned)
	for _, itemID := range orphaned {
		add(votes[itemID])
	}

	return eaters
}
