package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) (*GormAccountRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormAccountRepository{db: db}, nil
}

func (r *GormAccountRepository) SaveAccount(ctx context.Context, account domain.AccountRecord) error {
	model := toAccountModel(account)

	assignments := clause.Assignments(map[string]interface{}{
		"account_name":       gorm.Expr("EXCLUDED.account_name"),
		"broker":             gorm.Expr("EXCLUDED.broker"),
		"account_currency":   gorm.Expr("EXCLUDED.account_currency"),
		"account_size":       gorm.Expr("EXCLUDED.account_size"),
		"current_balance":    gorm.Expr("EXCLUDED.current_balance"),
		"pnl":                gorm.Expr("EXCLUDED.pnl"),
		"roi":                gorm.Expr("EXCLUDED.roi"),
		"winrate":            gorm.Expr("EXCLUDED.winrate"),
		"max_daily_drawdown": gorm.Expr("EXCLUDED.max_daily_drawdown"),
		"max_total_drawdown": gorm.Expr("EXCLUDED.max_total_drawdown"),
		"updated_at":         gorm.Expr("EXCLUDED.updated_at"),
	})

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: assignments,
		}).
		Create(&model).Error
}

func (r *GormAccountRepository) GetAccount(ctx context.Context, userID, accountID string) (domain.AccountRecord, error) {
	var model AccountModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, accountID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AccountRecord{}, fmt.Errorf("account %s: %w", accountID, domain.ErrNotFound)
		}
		return domain.AccountRecord{}, err
	}

	return model.toRecord(), nil
}

func (r *GormAccountRepository) ListAccounts(ctx context.Context, userID string) ([]domain.AccountRecord, error) {
	var models []AccountModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	accounts := make([]domain.AccountRecord, len(models))
	for i, model := range models {
		accounts[i] = model.toRecord()
	}

	return accounts, nil
}

// ListAccountOwners returns every user holding at least one account.
func (r *GormAccountRepository) ListAccountOwners(ctx context.Context) ([]string, error) {
	var owners []string
	if err := r.db.WithContext(ctx).
		Model(&AccountModel{}).
		Distinct().
		Order("user_id ASC").
		Pluck("user_id", &owners).Error; err != nil {
		return nil, err
	}
	return owners, nil
}
