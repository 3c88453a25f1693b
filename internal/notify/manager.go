package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

// Event types
const (
	EventCookStarted   = "cook_started"
	EventCookState     = "cook_state"
	EventTargetReached = "target_reached"
	EventCookEnded     = "cook_ended"
)

// DefaultSlackChannel is used when notifications.slack.channel is empty.
const DefaultSlackChannel = "#bbq"

// ErrNoProviders is returned by Notify when no provider is configured.
var ErrNoProviders = errors.New("no notification provider configured")

type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type webhookSender interface {
	Notify(ctx context.Context, message string) error
}

// Manager fans cook notifications out to Slack and Discord. Slack messages
// about the same cook are posted into one thread.
type Manager struct {
	// Slack
	client    slackPoster
	channelID string

	// Discord
	discord webhookSender

	mu      sync.Mutex
	threads map[string]string
}

// NewManager creates a Manager from the notifications.* settings. Extra
// slack options (for example slack.OptionAPIURL) are passed to the client.
func NewManager(opts ...slack.Option) *Manager {
	m := &Manager{threads: make(map[string]string)}
	m.initSlack(opts...)
	m.initDiscord()
	return m
}

func (m *Manager) initSlack(opts ...slack.Option) {
	if !viper.GetBool("notifications.slack.enabled") {
		return
	}

	botToken := viper.GetString("notifications.slack.token")
	if botToken == "" {
		botToken = os.Getenv("SLACK_BOT_USER_TOKEN")
	}
	if botToken == "" {
		slog.Warn("SLACK_BOT_USER_TOKEN not set, slack notifications disabled")
		return
	}

	m.client = slack.New(botToken, opts...)
	m.channelID = viper.GetString("notifications.slack.channel")
	if m.channelID == "" {
		m.channelID = DefaultSlackChannel
	}
}

func (m *Manager) initDiscord() {
	if !viper.GetBool("notifications.discord.enabled") {
		return
	}

	webhookURL := viper.GetString("notifications.discord.webhook_url")
	if webhookURL == "" {
		webhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	}
	if webhookURL == "" {
		slog.Warn("DISCORD_WEBHOOK_URL not set, discord notifications disabled")
		return
	}
	m.discord = NewDiscordNotifier(webhookURL)
}

// Enabled reports whether at least one provider is configured.
func (m *Manager) Enabled() bool {
	return m.client != nil || m.discord != nil
}

// Notify sends message for eventType to every configured provider. threadKey
// groups Slack messages into a thread; it is usually the cook id. Events
// switched off with notifications.events.<event>: false are skipped.
func (m *Manager) Notify(ctx context.Context, eventType, threadKey, message string) error {
	if !m.Enabled() {
		return ErrNoProviders
	}
	if !eventEnabled(eventType) {
		return nil
	}

	var errs []error
	if m.client != nil {
		if err := m.notifySlack(ctx, threadKey, message); err != nil {
			errs = append(errs, fmt.Errorf("slack: %w", err))
		}
	}
	if m.discord != nil {
		if err := m.discord.Notify(ctx, message); err != nil {
			errs = append(errs, fmt.Errorf("discord: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) notifySlack(ctx context.Context, threadKey, message string) error {
	opts := []slack.MsgOption{
		slack.MsgOptionText(message, false),
	}

	m.mu.Lock()
	threadTS := m.threads[threadKey]
	m.mu.Unlock()

	if threadTS != "" {
		opts = append(opts, slack.MsgOptionTS(threadTS))
	}

	_, ts, err := m.client.PostMessageContext(ctx, m.channelID, opts...)
	if err != nil {
		return err
	}

	if threadKey != "" && threadTS == "" {
		m.mu.Lock()
		m.threads[threadKey] = ts
		m.mu.Unlock()
	}
	return nil
}

func eventEnabled(eventType string) bool {
	key := "notifications.events." + eventType
	if !viper.IsSet(key) {
		return true
	}
	return viper.GetBool(key)
}
