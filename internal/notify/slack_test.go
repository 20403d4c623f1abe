package notify

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minutes-pipeline/internal/logger"
)

func TestNewSlackRequiresOneMechanism(t *testing.T) {
	log := logger.New("error")

	_, err := NewSlack("", "", "#minutes", log)
	require.Error(t, err)

	_, err = NewSlack("https://hooks.slack.com/services/T/B/X", "", "", log)
	require.NoError(t, err)

	_, err = NewSlack("", "xoxb-token", "#minutes", log)
	require.NoError(t, err)
}

func TestNotifyPrefersWebhook(t *testing.T) {
	var gotURL, gotMessage string
	n := &implNotifier{
		webhookURL: "https://hooks.slack.com/services/T/B/X",
		postWebhook: func(ctx context.Context, url, message string) error {
			gotURL = url
			gotMessage = message
			return nil
		},
		postMessage: func(ctx context.Context, channel, message string) error {
			t.Fatal("bot delivery must not be used when a webhook is configured")
			return nil
		},
	}

	err := n.Notify(context.Background(), "hello", "#ignored")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/X", gotURL)
	assert.Equal(t, "hello", gotMessage)
}

func TestNotifyBotTokenNeedsChannel(t *testing.T) {
	n := &implNotifier{
		postMessage: func(ctx context.Context, channel, message string) error {
			return nil
		},
	}

	err := n.Notify(context.Background(), "hello", "")
	require.Error(t, err)
}

func TestNotifyBotTokenFallsBackToDefaultChannel(t *testing.T) {
	var gotChannel string
	n := &implNotifier{
		defaultChannel: "#minutes",
		postMessage: func(ctx context.Context, channel, message string) error {
			gotChannel = channel
			return nil
		},
	}

	require.NoError(t, n.Notify(context.Background(), "hello", ""))
	assert.Equal(t, "#minutes", gotChannel)
}

func TestNotifyWebhookErrorSurfaces(t *testing.T) {
	n := &implNotifier{
		webhookURL: "https://hooks.slack.com/services/T/B/X",
		postWebhook: func(ctx context.Context, url, message string) error {
			return fmt.Errorf("503")
		},
	}

	assert.Error(t, n.Notify(context.Background(), "hello", ""))
}

func TestFormatDocumentSaved(t *testing.T) {
	msg := formatDocumentSaved("minutes_2026-08-28", "https://docs.google.com/document/d/abc", "minutes_test")

	assert.Contains(t, msg, "minutes_2026-08-28")
	assert.Contains(t, msg, "https://docs.google.com/document/d/abc")
	assert.Contains(t, msg, "保存先フォルダ: minutes_test")

	// Without a folder the message is three lines plus the blank separator.
	short := formatDocumentSaved("t", "u", "")
	assert.NotContains(t, short, "保存先フォルダ")
}
