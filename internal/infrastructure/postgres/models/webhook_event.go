package models

import (
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

// WebhookEventModel is the audit row of a verified processor delivery.
type WebhookEventModel struct {
	ID               string                 `gorm:"primaryKey;type:uuid"`
	EventID          string                 `gorm:"not null;uniqueIndex:idx_webhook_events_event_id"`
	EventType        string                 `gorm:"not null"`
	Gateway          string                 `gorm:"not null"`
	CorrelationToken string                 `gorm:"index:idx_webhook_events_token"`
	Result           domain.ReconcileResult `gorm:"not null"`
	ReceivedAt       time.Time              `gorm:"not null"`
}

func (WebhookEventModel) TableName() string {
	return "webhook_events"
}
