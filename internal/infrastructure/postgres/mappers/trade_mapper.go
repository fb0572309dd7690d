package mappers

import (
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainTrade(model *models.TradeModel) *domain.Trade {
	return &domain.Trade{
		ID:               model.ID,
		UserID:           model.UserID,
		Amount:           model.Amount,
		InvoiceRef:       model.InvoiceRef,
		CorrelationToken: model.CorrelationToken,
		GatewayName:      model.GatewayName,
		Status:           model.Status,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
		PaidAt:           model.PaidAt,
	}
}

func ToGORMTrade(trade *domain.Trade) *models.TradeModel {
	return &models.TradeModel{
		ID:               trade.ID,
		UserID:           trade.UserID,
		Amount:           trade.Amount,
		InvoiceRef:       trade.InvoiceRef,
		CorrelationToken: trade.CorrelationToken,
		GatewayName:      trade.GatewayName,
		Status:           trade.Status,
		CreatedAt:        trade.CreatedAt,
		UpdatedAt:        trade.UpdatedAt,
		PaidAt:           trade.PaidAt,
	}
}

func ToGORMWebhookEvent(event *domain.WebhookEventLog) *models.WebhookEventModel {
	return &models.WebhookEventModel{
		ID:               event.ID,
		EventID:          event.EventID,
		EventType:        event.EventType,
		Gateway:          event.Gateway,
		CorrelationToken: event.CorrelationToken,
		Result:           event.Result,
		ReceivedAt:       event.ReceivedAt,
	}
}
