package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Nateight8/trading-mongoparl/internal/infra/repository"
)

func ApplyMigrations(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&repository.AccountModel{},
		&repository.TradeModel{},
		&repository.PortfolioSnapshotModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
