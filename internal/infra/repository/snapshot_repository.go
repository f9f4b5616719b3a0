package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Nateight8/trading-mongoparl/internal/domain"
)

const defaultSnapshotLimit = 30

type GormSnapshotRepository struct {
	db *gorm.DB
}

func NewGormSnapshotRepository(db *gorm.DB) (*GormSnapshotRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &GormSnapshotRepository{db: db}, nil
}

func (r *GormSnapshotRepository) AddSnapshot(ctx context.Context, snapshot domain.PortfolioSnapshot) error {
	model, err := toPortfolioSnapshotModel(snapshot)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// ListSnapshots returns the newest snapshots first.
func (r *GormSnapshotRepository) ListSnapshots(ctx context.Context, userID string, limit int) ([]domain.PortfolioSnapshot, error) {
	if limit <= 0 {
		limit = defaultSnapshotLimit
	}

	var models []PortfolioSnapshotModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("taken_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	snapshots := make([]domain.PortfolioSnapshot, 0, len(models))
	for _, model := range models {
		snapshot, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}
