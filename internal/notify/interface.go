package notify

import "context"

// Notifier sends one-shot, best-effort notifications. There is no retry and
// no delivery confirmation beyond the underlying call's own success signal.
type Notifier interface {
	// Notify sends a message. The channel is only used by the bot-token
	// delivery mechanism; webhooks ignore it.
	Notify(ctx context.Context, message, channel string) error
	// NotifyDocumentSaved sends the fixed document-saved announcement.
	NotifyDocumentSaved(ctx context.Context, title, url, folderName string) error
}
