package split

// SplitResponse is the wire shape for a computed split: the payer id plus a
// flat map from user id to signed amount with two decimal places.
type SplitResponse struct {
	PayerID string             `json:"payer_id"`
	Splits  map[string]float64 `json:"splits"`
}

// ToResponse converts the internal decimal totals into the response format.
// All rounding decisions are already made by the time this runs; the float
// conversion is presentation only.
func (r *Result) ToResponse() *SplitResponse {
	splits := make(map[string]float64, len(r.Totals))
	for uid, amount := range r.Totals {
		splits[uid] = amount.InexactFloat64()
	}
	return &SplitResponse{
		PayerID: r.PayerID,
		Splits:  splits,
	}
}
