package repository

import (
	"context"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultWebhookEventRepository struct {
	DB *gorm.DB
}

func NewDefaultWebhookEventRepository(db *gorm.DB) *DefaultWebhookEventRepository {
	return &DefaultWebhookEventRepository{DB: db}
}

// SaveEvent keeps the first record of each processor event id.
func (r *DefaultWebhookEventRepository) SaveEvent(ctx context.Context, event *domain.WebhookEventLog) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(mappers.ToGORMWebhookEvent(event)).Error
}
