package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Event is an outbound booking notification.
type Event struct {
	Title  string
	Fields []Field
}

type Field struct {
	Name  string
	Value string
}

type Notifier interface {
	Send(ctx context.Context, event Event) error
}

// Discord webhook payload.
type message struct {
	Embeds []embed `json:"embeds"`
}

type embed struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Fields []embedField `json:"fields"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// WebhookClient posts booking events to a Discord webhook.
type WebhookClient struct {
	webhookURL string
	client     *http.Client
}

func NewWebhookClient(webhookURL string) *WebhookClient {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}
	return &WebhookClient{webhookURL: webhookURL, client: client}
}

func (c *WebhookClient) Send(ctx context.Context, event Event) error {
	if len(c.webhookURL) == 0 {
		return errors.New("webhook URL cannot be empty")
	}

	fields := make([]embedField, 0, len(event.Fields))

	for _, field := range event.Fields {
		fields = append(fields, embedField{Name: field.Name, Value: field.Value, Inline: true})
	}

	body, err := json.Marshal(message{
		Embeds: []embed{{
			Type:   "rich",
			Title:  event.Title,
			Fields: fields,
		}},
	})

	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed create new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)

	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, readErr := io.ReadAll(res.Body)
		if readErr != nil {
			return fmt.Errorf("request failed with status %d; also failed reading body: %w", res.StatusCode, readErr)
		}
		return fmt.Errorf("request failed with status '%v' and body:\n%v", res.StatusCode, string(bodyBytes))
	}

	return nil
}
