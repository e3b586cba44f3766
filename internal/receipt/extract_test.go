package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func geminiReply(text string) string {
	reply := map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": text}},
			},
		}},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

const sampleReceiptJSON = `{
  "restaurant_name": "Pizza Palace",
  "items": [
    {"name": "Margherita", "price": 12.50, "is_tax_or_tip": false},
    {"name": "Cola", "price": 3.00, "is_tax_or_tip": false}
  ],
  "tax_amount": 1.24,
  "tip_amount": 2.50,
  "total_amount": 19.24
}`

func TestGeminiExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 2 {
			t.Errorf("unexpected request shape: %+v", req)
		}
		if req.Contents[0].Parts[1].InlineData.MIMEType != "image/jpeg" {
			t.Errorf("mime = %q, want image/jpeg", req.Contents[0].Parts[1].InlineData.MIMEType)
		}
		w.Write([]byte(geminiReply("```json\n" + sampleReceiptJSON + "\n```")))
	}))
	defer server.Close()

	extractor := NewGeminiExtractor("test-key", "gemini-1.5-flash")
	extractor.endpoint = server.URL

	receipt, err := extractor.Extract(context.Background(), []byte{0xff, 0xd8, 0xff}, "image/jpeg")
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if receipt.RestaurantName != "Pizza Palace" {
		t.Errorf("restaurant = %q, want Pizza Palace", receipt.RestaurantName)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("items count = %d, want 2", len(receipt.Items))
	}
	if !receipt.Items[0].Price.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("first item price = %s, want 12.50", receipt.Items[0].Price)
	}
	if !receipt.TaxAmount.Equal(decimal.RequireFromString("1.24")) {
		t.Errorf("tax = %s, want 1.24", receipt.TaxAmount)
	}
}

func TestGeminiExtractor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "api error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "invalid key"}`, http.StatusForbidden)
			},
			wantErr: ErrExtractionFailed,
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates": []}`))
			},
			wantErr: ErrExtractionFailed,
		},
		{
			name: "non-json reply",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiReply("I cannot read this image.")))
			},
			wantErr: ErrExtractionFailed,
		},
		{
			name: "empty items",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiReply(`{"restaurant_name": "x", "items": []}`)))
			},
			wantErr: ErrEmptyReceipt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			extractor := NewGeminiExtractor("test-key", "gemini-1.5-flash")
			extractor.endpoint = server.URL

			_, err := extractor.Extract(context.Background(), []byte{0xff, 0xd8, 0xff}, "image/jpeg")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Extract() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, false},
		{"fenced json", "```json\n{\"a\": 1}\n```", `{"a": 1}`, false},
		{"fenced no language", "```\n{\"a\": 1}\n```", `{"a": 1}`, false},
		{"surrounding prose", "Here you go: {\"a\": 1} enjoy!", `{"a": 1}`, false},
		{"no object", "nothing here", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
