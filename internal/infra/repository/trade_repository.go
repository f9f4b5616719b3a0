package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

type GormTradeRepository struct {
	db *gorm.DB
}

func NewGormTradeRepository(db *gorm.DB) (*GormTradeRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormTradeRepository{db: db}, nil
}

// SaveTrade inserts the trade or overwrites its mutable columns. Owner and
// account never change after creation.
func (r *GormTradeRepository) SaveTrade(ctx context.Context, trade domain.TradeRecord) error {
	model, err := toTradeModel(trade)
	if err != nil {
		return fmt.Errorf("trade %s: %w", trade.ID, err)
	}

	assignments := clause.Assignments(map[string]interface{}{
		"instrument":           gorm.Expr("EXCLUDED.instrument"),
		"side":                 gorm.Expr("EXCLUDED.side"),
		"planned_entry_price":  gorm.Expr("EXCLUDED.planned_entry_price"),
		"planned_stop_loss":    gorm.Expr("EXCLUDED.planned_stop_loss"),
		"planned_take_profit":  gorm.Expr("EXCLUDED.planned_take_profit"),
		"size":                 gorm.Expr("EXCLUDED.size"),
		"executed_entry_price": gorm.Expr("EXCLUDED.executed_entry_price"),
		"executed_stop_loss":   gorm.Expr("EXCLUDED.executed_stop_loss"),
		"execution_notes":      gorm.Expr("EXCLUDED.execution_notes"),
		"exit_price":           gorm.Expr("EXCLUDED.exit_price"),
		"closed":               gorm.Expr("EXCLUDED.closed"),
		"execution_style":      gorm.Expr("EXCLUDED.execution_style"),
		"status":               gorm.Expr("EXCLUDED.status"),
		"setup_type":           gorm.Expr("EXCLUDED.setup_type"),
		"timeframe":            gorm.Expr("EXCLUDED.timeframe"),
		"notes":                gorm.Expr("EXCLUDED.notes"),
		"tags":                 gorm.Expr("EXCLUDED.tags"),
		"updated_at":           gorm.Expr("EXCLUDED.updated_at"),
	})

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: assignments,
		}).
		Create(&model).Error
}

func (r *GormTradeRepository) GetTrade(ctx context.Context, userID, tradeID string) (domain.TradeRecord, error) {
	var model TradeModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, tradeID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TradeRecord{}, fmt.Errorf("trade %s: %w", tradeID, domain.ErrNotFound)
		}
		return domain.TradeRecord{}, err
	}

	return model.toRecord(), nil
}

func (r *GormTradeRepository) ListTrades(ctx context.Context, userID string) ([]domain.TradeRecord, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *GormTradeRepository) ListAccountTrades(ctx context.Context, userID, accountID string) ([]domain.TradeRecord, error) {
	return r.list(r.db.WithContext(ctx).Where("user_id = ? AND account_id = ?", userID, accountID))
}

func (r *GormTradeRepository) list(query *gorm.DB) ([]domain.TradeRecord, error) {
	var models []TradeModel
	if err := query.Order("created_at ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]domain.TradeRecord, len(models))
	for i, model := range models {
		records[i] = model.toRecord()
	}

	return records, nil
}
