package domain

import "context"

type TradeRepository interface {
	// CreateTrade returns ErrTokenCollision when the correlation token already exists.
	CreateTrade(ctx context.Context, trade *Trade) error
	GetTradeByToken(ctx context.Context, token string) (*Trade, error)
	// TransitionStatus moves the trade from one status to another in a single
	// conditional write. It reports whether a row was changed.
	TransitionStatus(ctx context.Context, token string, from, to TradeStatus) (bool, error)
	Ping(ctx context.Context) error
}
