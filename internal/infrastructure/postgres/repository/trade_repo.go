package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultTradeRepository struct {
	DB *gorm.DB
}

func NewDefaultTradeRepository(db *gorm.DB) *DefaultTradeRepository {
	return &DefaultTradeRepository{DB: db}
}

func (r *DefaultTradeRepository) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	tradeModel := mappers.ToGORMTrade(trade)
	if err := r.DB.WithContext(ctx).Create(tradeModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrTokenCollision, trade.CorrelationToken)
		}
		return err
	}
	return nil
}

func (r *DefaultTradeRepository) GetTradeByToken(ctx context.Context, token string) (*domain.Trade, error) {
	var trade models.TradeModel
	if err := r.DB.WithContext(ctx).First(&trade, "correlation_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTradeNotFound
		}
		return nil, err
	}

	return mappers.ToDomainTrade(&trade), nil
}

// TransitionStatus is a compare-and-set on status: concurrent callers race on
// the WHERE clause and only one of them sees a changed row.
func (r *DefaultTradeRepository) TransitionStatus(ctx context.Context, token string, from, to domain.TradeStatus) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": now,
	}
	if to == domain.TradePaid {
		updates["paid_at"] = now
	}

	result := r.DB.WithContext(ctx).
		Model(&models.TradeModel{}).
		Where("correlation_token = ? AND status = ?", token, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *DefaultTradeRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
