// Package vonage is a minimal HTTP client for the Vonage REST endpoints
// the proxy forwards to: SMS, voice calls (TTS), WhatsApp messages,
// account balance and SMS pricing.
package vonage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultRestBaseURL = "https://rest.nexmo.com"
	defaultAPIBaseURL  = "https://api.nexmo.com"
)

type Client struct {
	apiKey    string
	apiSecret string

	// RestBaseURL and APIBaseURL are overridable so tests can point the
	// client at a local mock server.
	RestBaseURL string
	APIBaseURL  string

	httpClient *http.Client
}

func NewClient(apiKey, apiSecret string, timeout time.Duration) *Client {
	return &Client{
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		RestBaseURL: defaultRestBaseURL,
		APIBaseURL:  defaultAPIBaseURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// SendSMS submits a text message and returns the provider's message id and
// remaining account balance.
func (c *Client) SendSMS(ctx context.Context, to, from, text string) (*SMSResult, error) {
	payload := smsRequest{
		APIKey:    c.apiKey,
		APISecret: c.apiSecret,
		To:        to,
		From:      from,
		Text:      text,
	}

	var result smsResponse
	if err := c.postJSON(ctx, c.RestBaseURL+"/sms/json", payload, false, &result); err != nil {
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}

	if len(result.Messages) == 0 {
		return nil, fmt.Errorf("failed to send SMS: empty messages array in response")
	}

	msg := result.Messages[0]
	// Status "0" is success; the field may be absent entirely.
	if msg.Status != "" && msg.Status != "0" {
		return nil, fmt.Errorf("failed to send SMS: provider status %s: %s", msg.Status, msg.ErrorText)
	}

	return &SMSResult{
		MessageID:        msg.MessageID,
		RemainingBalance: msg.RemainingBalance,
	}, nil
}

// SendVoice places a call that reads the given text to the recipient.
func (c *Client) SendVoice(ctx context.Context, to, from, text, language string) (*VoiceResult, error) {
	payload := voiceRequest{
		To:   []voiceEndpoint{{Type: "phone", Number: to}},
		From: voiceEndpoint{Type: "phone", Number: from},
		NCCO: []nccoAction{{Action: "talk", Text: text, Language: language, Style: 0}},
	}

	var result voiceResponse
	if err := c.postJSON(ctx, c.APIBaseURL+"/v1/calls", payload, true, &result); err != nil {
		return nil, fmt.Errorf("failed to send voice call: %w", err)
	}

	return &VoiceResult{
		CallID: result.UUID,
		Status: result.Status,
	}, nil
}

// SendWhatsApp submits a WhatsApp text message via the Messages API.
func (c *Client) SendWhatsApp(ctx context.Context, to, from, text string) (*WhatsAppResult, error) {
	payload := whatsAppRequest{
		To:          to,
		From:        from,
		Channel:     "whatsapp",
		MessageType: "text",
		Text:        whatsAppText{Body: text},
	}

	var result whatsAppResponse
	if err := c.postJSON(ctx, c.APIBaseURL+"/v1/messages", payload, true, &result); err != nil {
		return nil, fmt.Errorf("failed to send WhatsApp message: %w", err)
	}

	return &WhatsAppResult{
		MessageID: result.MessageUUID,
		Status:    result.Status,
	}, nil
}

// Balance fetches the current account balance.
func (c *Client) Balance(ctx context.Context) (*BalanceResult, error) {
	query := url.Values{
		"api_key":    {c.apiKey},
		"api_secret": {c.apiSecret},
	}

	var result balanceResponse
	if err := c.getJSON(ctx, c.RestBaseURL+"/account/get-balance?"+query.Encode(), &result); err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return &BalanceResult{
		Value:      result.Value,
		AutoReload: result.AutoReload,
	}, nil
}

// SMSPricing returns the outbound SMS price for a country prefix.
func (c *Client) SMSPricing(ctx context.Context, country string) (float64, error) {
	query := url.Values{
		"api_key":    {c.apiKey},
		"api_secret": {c.apiSecret},
		"country":    {country},
	}

	var result pricingResponse
	if err := c.getJSON(ctx, c.RestBaseURL+"/pricing/sms?"+query.Encode(), &result); err != nil {
		return 0, fmt.Errorf("failed to get pricing: %w", err)
	}

	if len(result.Countries) == 0 || len(result.Countries[0].Networks) == 0 {
		return 0, fmt.Errorf("failed to get pricing: no networks in response")
	}

	raw := result.Countries[0].Networks[0].Prices.SMS.Price
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to get pricing: unparsable price %q: %w", raw, err)
	}

	return price, nil
}

func (c *Client) postJSON(ctx context.Context, url string, payload interface{}, basicAuth bool, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if basicAuth {
		req.SetBasicAuth(c.apiKey, c.apiSecret)
	}

	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
