// Package notify delivers recommendation emails through a transactional-email
// HTTP API. The worker treats any send error as logged and non-fatal.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
}

// EmailClient posts plain-text messages to the email provider's /v1/send
// endpoint with bearer authentication.
type EmailClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sender     string
}

// NewEmailClient builds a client for the given provider endpoint. sender is
// the verified from-address all notifications are sent as.
func NewEmailClient(baseURL, apiKey, sender string) *EmailClient {
	return &EmailClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		sender:     sender,
	}
}

// Send dispatches one email and returns the provider's message id.
func (c *EmailClient) Send(ctx context.Context, recipient, subject, body string) (string, error) {
	payload, err := json.Marshal(sendRequest{
		From:    c.sender,
		To:      []string{recipient},
		Subject: subject,
		Text:    body,
	})
	if err != nil {
		return "", fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/send", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("email api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("email api: status %d: %s", resp.StatusCode, snippet)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode send response: %w", err)
	}
	return out.MessageID, nil
}
