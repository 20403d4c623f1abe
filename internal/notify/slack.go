package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"minutes-pipeline/internal/logger"
)

// implNotifier delivers through exactly one of two mechanisms: an incoming
// webhook (no channel needed) or a bot-token client posting to a channel.
type implNotifier struct {
	webhookURL     string
	defaultChannel string
	api            *slack.Client
	logger         logger.Logger

	postWebhook func(ctx context.Context, url, message string) error
	postMessage func(ctx context.Context, channel, message string) error
}

// NewSlack creates a Notifier. One of webhookURL or botToken must be set;
// the webhook takes precedence when both are.
func NewSlack(webhookURL, botToken, defaultChannel string, log logger.Logger) (Notifier, error) {
	if webhookURL == "" && botToken == "" {
		return nil, fmt.Errorf("neither SLACK_WEBHOOK_URL nor SLACK_BOT_TOKEN is set")
	}

	n := &implNotifier{
		webhookURL:     webhookURL,
		defaultChannel: defaultChannel,
		logger:         log,
	}

	n.postWebhook = func(ctx context.Context, url, message string) error {
		return slack.PostWebhookContext(ctx, url, &slack.WebhookMessage{Text: message})
	}

	if botToken != "" {
		n.api = slack.New(botToken)
		n.postMessage = func(ctx context.Context, channel, message string) error {
			_, _, err := n.api.PostMessageContext(ctx, channel, slack.MsgOptionText(message, false))
			return err
		}
	}

	return n, nil
}

func (n *implNotifier) Notify(ctx context.Context, message, channel string) error {
	if n.webhookURL != "" {
		if err := n.postWebhook(ctx, n.webhookURL, message); err != nil {
			return fmt.Errorf("post webhook: %w", err)
		}
		return nil
	}

	if channel == "" {
		channel = n.defaultChannel
	}
	if channel == "" {
		return fmt.Errorf("bot-token delivery requires a channel")
	}

	if err := n.postMessage(ctx, channel, message); err != nil {
		return fmt.Errorf("post message to %s: %w", channel, err)
	}
	return nil
}

func (n *implNotifier) NotifyDocumentSaved(ctx context.Context, title, url, folderName string) error {
	return n.Notify(ctx, formatDocumentSaved(title, url, folderName), n.defaultChannel)
}

// formatDocumentSaved builds the fixed three/four-line announcement.
func formatDocumentSaved(title, url, folderName string) string {
	var b strings.Builder
	b.WriteString("📄 議事録がGoogleドキュメントに保存されました\n\n")
	b.WriteString("ファイル名: " + title + "\n")
	b.WriteString("URL: " + url)
	if folderName != "" {
		b.WriteString("\n保存先フォルダ: " + folderName)
	}
	return b.String()
}
