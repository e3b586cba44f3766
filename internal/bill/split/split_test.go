package split

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name         string
		total        string
		participants int
		want         []string
		wantErr      error
	}{
		{
			name:         "even division",
			total:        "30.00",
			participants: 3,
			want:         []string{"10.00", "10.00", "10.00"},
		},
		{
			name:         "remainder cents go to first positions",
			total:        "10.00",
			participants: 3,
			want:         []string{"3.34", "3.33", "3.33"},
		},
		{
			name:         "single participant keeps the whole amount",
			total:        "15.67",
			participants: 1,
			want:         []string{"15.67"},
		},
		{
			name:         "amount smaller than participant count",
			total:        "0.01",
			participants: 5,
			want:         []string{"0.01", "0.00", "0.00", "0.00", "0.00"},
		},
		{
			name:         "zero amount",
			total:        "0.00",
			participants: 4,
			want:         []string{"0.00", "0.00", "0.00", "0.00"},
		},
		{
			name:         "sub-cent total rounds half up before splitting",
			total:        "0.005",
			participants: 1,
			want:         []string{"0.01"},
		},
		{
			name:         "two remainder cents",
			total:        "1.00",
			participants: 7,
			// 100 cents / 7 = 14 rem 2
			want: []string{"0.15", "0.15", "0.14", "0.14", "0.14", "0.14", "0.14"},
		},
		{
			name:         "zero participants",
			total:        "10.00",
			participants: 0,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative participants",
			total:        "10.00",
			participants: -2,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative amount",
			total:        "-0.01",
			participants: 2,
			wantErr:      ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := SplitEqually(dec(tt.total), tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SplitEqually() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitEqually() unexpected error: %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("SplitEqually() returned %d shares, want %d", len(shares), len(tt.want))
			}
			for i, want := range tt.want {
				if !shares[i].Equal(dec(want)) {
					t.Errorf("share[%d] = %s, want %s", i, shares[i], want)
				}
			}
		})
	}
}

// Shares must sum to the cent-rounded total for any valid input.
func TestSplitEquallyConservation(t *testing.T) {
	totals := []string{"0.01", "0.03", "1.00", "9.99", "10.00", "18.99", "100.01", "12345.67", "0.005"}
	counts := []int{1, 2, 3, 4, 5, 7, 11, 50}

	for _, total := range totals {
		for _, n := range counts {
			shares, err := SplitEqually(dec(total), n)
			if err != nil {
				t.Fatalf("SplitEqually(%s, %d) error: %v", total, n, err)
			}
			sum := decimal.Zero
			for _, s := range shares {
				sum = sum.Add(s)
			}
			want := dec(total).Round(2)
			if !sum.Equal(want) {
				t.Errorf("SplitEqually(%s, %d): shares sum to %s, want %s", total, n, sum, want)
			}
		}
	}
}
