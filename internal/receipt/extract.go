package receipt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrExtractionFailed = errors.New("could not extract receipt data from image")
	ErrEmptyReceipt     = errors.New("no items found on receipt")
)

// ExtractedItem is a single line item recognized on a receipt
type ExtractedItem struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	IsTaxOrTip bool            `json:"is_tax_or_tip"`
}

// ExtractedReceipt is the structured result of receipt image analysis
type ExtractedReceipt struct {
	RestaurantName string          `json:"restaurant_name"`
	Items          []ExtractedItem `json:"items"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TipAmount      decimal.Decimal `json:"tip_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// Extractor turns a receipt image into structured line items
type Extractor interface {
	Extract(ctx context.Context, imageData []byte, mimeType string) (*ExtractedReceipt, error)
}

const extractionPrompt = `Analyze this receipt image and extract the information as JSON.

Return ONLY a JSON object with this exact structure, no other text:
{
  "restaurant_name": "name of the restaurant or store",
  "items": [
    {"name": "item name", "price": 12.99, "is_tax_or_tip": false}
  ],
  "tax_amount": 2.50,
  "tip_amount": 5.00,
  "total_amount": 45.99
}

Rules:
- Each purchased line item goes in "items" with its exact printed price.
- Do NOT include tax or tip lines in "items"; report them in "tax_amount" and "tip_amount".
- Use 0 for tax_amount or tip_amount when the receipt does not show one.
- Prices are plain decimal numbers without currency symbols.
- If text is unreadable, make your best guess from context.`

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiExtractor calls the Gemini generateContent API to read receipts
type GeminiExtractor struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

func NewGeminiExtractor(apiKey, model string) *GeminiExtractor {
	return &GeminiExtractor{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultGeminiEndpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobData `json:"inline_data,omitempty"`
}

type geminiBlobData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiExtractor) Extract(ctx context.Context, imageData []byte, mimeType string) (*ExtractedReceipt, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: extractionPrompt},
				{InlineData: &geminiBlobData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(imageData),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.endpoint, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %w", resp.StatusCode, ErrExtractionFailed)
	}

	var gr geminiResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, ErrExtractionFailed
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var receipt ExtractedReceipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		return nil, fmt.Errorf("gemini returned malformed receipt data: %w", ErrExtractionFailed)
	}
	if len(receipt.Items) == 0 {
		return nil, ErrEmptyReceipt
	}

	return &receipt, nil
}

// extractJSON pulls the JSON object out of a model response that may wrap it
// in markdown code fences or surrounding prose
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrExtractionFailed
	}
	return text[start : end+1], nil
}
