package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DiscordUsername is the display name cook messages are posted under.
const DiscordUsername = "Meater"

type discordMessage struct {
	Content  string `json:"content"`
	Username string `json:"username,omitempty"`
}

// DiscordNotifier posts cook messages to a Discord webhook.
type DiscordNotifier struct {
	WebhookURL string
	Username   string
	Client     *http.Client
}

// NewDiscordNotifier creates a notifier for webhookURL.
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{
		WebhookURL: webhookURL,
		Username:   DiscordUsername,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify posts message to the webhook. Discord answers 204 on success.
func (n *DiscordNotifier) Notify(ctx context.Context, message string) error {
	if n.WebhookURL == "" {
		return fmt.Errorf("discord webhook URL is not configured")
	}

	body, err := json.Marshal(discordMessage{Content: message, Username: n.Username})
	if err != nil {
		return fmt.Errorf("encode discord message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post discord message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("discord webhook rejected message, status: %d", resp.StatusCode)
	}
	return nil
}
