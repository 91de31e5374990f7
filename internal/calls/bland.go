package calls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// BlandProvider places calls through the Bland AI REST API.
type BlandProvider struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewBlandProvider(baseURL, apiKey string) *BlandProvider {
	return &BlandProvider{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: http.DefaultClient,
	}
}

// PlaceCall posts the call and returns the call_id field of whatever the
// provider answers. Only transport failures are reported as errors.
func (p *BlandProvider) PlaceCall(ctx context.Context, call Call) (string, error) {
	jsonData, err := json.Marshal(call)
	if err != nil {
		return "", fmt.Errorf("error marshaling call payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/v1/calls", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating call request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("authorization", p.APIKey)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error placing call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading call response: %w", err)
	}

	var result struct {
		CallID string `json:"call_id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", nil
	}

	return result.CallID, nil
}
