package domain

import (
	"context"
)

// TradeRepository exposes persisted trades in their stored form.
type TradeRepository interface {
	SaveTrade(ctx context.Context, trade TradeRecord) error
	GetTrade(ctx context.Context, userID, tradeID string) (TradeRecord, error)
	ListTrades(ctx context.Context, userID string) ([]TradeRecord, error)
	ListAccountTrades(ctx context.Context, userID, accountID string) ([]TradeRecord, error)
}

type AccountRepository interface {
	SaveAccount(ctx context.Context, account AccountRecord) error
	GetAccount(ctx context.Context, userID, accountID string) (AccountRecord, error)
	ListAccounts(ctx context.Context, userID string) ([]AccountRecord, error)
	ListAccountOwners(ctx context.Context) ([]string, error)
}

type SnapshotRepository interface {
	AddSnapshot(ctx context.Context, snapshot PortfolioSnapshot) error
	ListSnapshots(ctx context.Context, userID string, limit int) ([]PortfolioSnapshot, error)
}
