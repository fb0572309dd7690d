package domain

import "context"

type WebhookEventRepository interface {
	// SaveEvent records a delivery. Repeated event ids are ignored.
	SaveEvent(ctx context.Context, event *WebhookEventLog) error
}
