package split

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeBillSplit(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		votes    map[string][]string
		payerID  string
		want     map[string]string
		validate func(t *testing.T, result *Result)
	}{
		{
			name:    "empty bill returns zero for payer only",
			items:   nil,
			votes:   map[string][]string{},
			payerID: "p",
			want:    map[string]string{"p": "0"},
		},
		{
			name: "restaurant bill with shared items and pooled tax and tip",
			items: []Item{
				{ID: "pizza", Price: dec("18.99")},
				{ID: "bread", Price: dec("6.50")},
				{ID: "cola", Price: dec("3.99")},
				{ID: "tax", Price: dec("2.51"), IsTaxOrTip: true},
				{ID: "tip", Price: dec("5.76"), IsTaxOrTip: true},
			},
			votes: map[string][]string{
				"pizza": {"alice", "bob"},
				"bread": {"alice", "bob", "carol"},
				"cola":  {"bob"},
			},
			payerID: "alice",
			// pizza: 9.50/9.49, bread: 2.17/2.17/2.16, cola: 3.99 to bob,
			// pool 8.27 over alice,bob,carol: 2.76/2.76/2.75
			want: map[string]string{
				"alice": "-23.32",
				"bob":   "18.41",
				"carol": "4.91",
			},
			validate: func(t *testing.T, result *Result) {
				bob, carol := result.Totals["bob"], result.Totals["carol"]
				if !bob.GreaterThan(carol) {
					t.Errorf("bob owes %s, carol owes %s; bob drank the cola alone and should owe more", bob, carol)
				}
			},
		},
		{
			name: "item with no voters contributes nothing",
			items: []Item{
				{ID: "steak", Price: dec("42.00")},
				{ID: "soup", Price: dec("8.00")},
			},
			votes: map[string][]string{
				"soup": {"alice", "bob"},
			},
			payerID: "alice",
			want: map[string]string{
				"alice": "-4.00",
				"bob":   "4.00",
			},
		},
		{
			name: "payer outside the eater set still balances the bill",
			items: []Item{
				{ID: "wine", Price: dec("20.00")},
			},
			votes: map[string][]string{
				"wine": {"bob", "carol"},
			},
			payerID: "dave",
			want: map[string]string{
				"bob":   "10.00",
				"carol": "10.00",
				"dave":  "-20.00",
			},
		},
		{
			name: "eater with no item contribution owes only tax and tip",
			items: []Item{
				{ID: "pasta", Price: dec("12.00")},
				{ID: "tip", Price: dec("3.00"), IsTaxOrTip: true},
			},
			votes: map[string][]string{
				"pasta": {"alice"},
				"ghost": {"erin"}, // vote for an item no longer on the bill
			},
			payerID: "alice",
			want: map[string]string{
				"alice": "-1.50",
				"erin":  "1.50",
			},
			validate: func(t *testing.T, result *Result) {
				// alice: 12.00 + 1.50 consumed, fronted 15.00 -> -1.50.
				// erin ate nothing that still exists but shares the tip.
				sum := decimal.Zero
				for _, v := range result.Totals {
					sum = sum.Add(v)
				}
				if !sum.IsZero() {
					t.Errorf("totals sum to %s, want 0", sum)
				}
			},
		},
		{
			name: "zero price item is harmless",
			items: []Item{
				{ID: "water", Price: dec("0.00")},
				{ID: "salad", Price: dec("9.00")},
			},
			votes: map[string][]string{
				"water": {"alice", "bob", "carol"},
				"salad": {"bob"},
			},
			payerID: "carol",
			want: map[string]string{
				"alice": "0.00",
				"bob":   "9.00",
				"carol": "-9.00",
			},
		},
		{
			name: "tax only bill splits the pool across all eaters",
			items: []Item{
				{ID: "burger", Price: dec("10.00")},
				{ID: "tax", Price: dec("1.00"), IsTaxOrTip: true},
			},
			votes: map[string][]string{
				"burger": {"alice", "bob", "carol"},
			},
			payerID: "bob",
			// burger: 3.34/3.33/3.33, tax: 0.34/0.33/0.33 in first-seen order
			want: map[string]string{
				"alice": "3.68",
				"bob":   "-7.34",
				"carol": "3.66",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeBillSplit(tt.items, tt.votes, tt.payerID)
			if err != nil {
				t.Fatalf("ComputeBillSplit() error: %v", err)
			}
			if result.PayerID != tt.payerID {
				t.Errorf("PayerID = %s, want %s", result.PayerID, tt.payerID)
			}
			if len(result.Totals) != len(tt.want) {
				t.Errorf("got %d totals, want %d: %v", len(result.Totals), len(tt.want), result.Totals)
			}
			for uid, want := range tt.want {
				got, ok := result.Totals[uid]
				if !ok {
					t.Errorf("missing total for %s", uid)
					continue
				}
				if !got.Equal(dec(want)) {
					t.Errorf("total[%s] = %s, want %s", uid, got, want)
				}
			}

			// Conservation holds for every valid input.
			sum := decimal.Zero
			for _, v := range result.Totals {
				sum = sum.Add(v)
			}
			if sum.Abs().GreaterThanOrEqual(dec("0.01")) {
				t.Errorf("totals sum to %s, want zero", sum)
			}

			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

// Identical input must produce identical output across calls.
func TestComputeBillSplitIdempotent(t *testing.T) {
	items := []Item{
		{ID: "pizza", Price: dec("18.99")},
		{ID: "bread", Price: dec("6.50")},
		{ID: "tip", Price: dec("5.76"), IsTaxOrTip: true},
	}
	votes := map[string][]string{
		"pizza": {"alice", "bob"},
		"bread": {"alice", "bob", "carol"},
	}

	first, err := ComputeBillSplit(items, votes, "alice")
	if err != nil {
		t.Fatalf("first ComputeBillSplit() error: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := ComputeBillSplit(items, votes, "alice")
		if err != nil {
			t.Fatalf("repeat ComputeBillSplit() error: %v", err)
		}
		if again.PayerID != first.PayerID || len(again.Totals) != len(first.Totals) {
			t.Fatalf("result shape changed between calls")
		}
		for uid, want := range first.Totals {
			if !again.Totals[uid].Equal(want) {
				t.Fatalf("total[%s] changed from %s to %s", uid, want, again.Totals[uid])
			}
		}
	}
}

func TestComputeBillSplitNegativePrice(t *testing.T) {
	items := []Item{{ID: "refund", Price: dec("-5.00")}}
	votes := map[string][]string{"refund": {"alice"}}

	if _, err := ComputeBillSplit(items, votes, "alice"); err == nil {
		t.Fatal("expected error for negative item price")
	}
}

func TestResultToResponse(t *testing.T) {
	result := &Result{
		PayerID: "alice",
		Totals: map[string]decimal.Decimal{
			"alice": dec("-23.32"),
			"bob":   dec("18.41"),
			"carol": dec("4.91"),
		},
	}

	resp := result.ToResponse()
	want := &SplitResponse{
		PayerID: "alice",
		Splits: map[string]float64{
			"alice": -23.32,
			"bob":   18.41,
			"carol": 4.91,
		},
	}
	if !reflect.DeepEqual(resp, want) {
		t.Errorf("ToResponse() = %+v, want %+v", resp, want)
	}
}
