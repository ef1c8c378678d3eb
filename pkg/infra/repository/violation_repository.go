package repository

import (
	"context"
	"fmt"

	"github.com/veloxchat/sentinel/pkg/domain/violation"
	"gorm.io/gorm"
)

type ViolationRepository struct {
	db *gorm.DB
}

func NewViolationRepository(db *gorm.DB) violation.Repository {
	return &ViolationRepository{
		db: db,
	}
}

func (r *ViolationRepository) Insert(ctx context.Context, v *violation.Violation) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to insert violation: %w", err)
	}
	return nil
}

func (r *ViolationRepository) ListByUserAndChannel(ctx context.Context, userID, channelID string, limit int) ([]*violation.Violation, error) {
	if limit <= 0 {
		limit = 50
	}
	var violations []*violation.Violation
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		Order("created_at DESC").
		Limit(limit).
		Find(&violations).Error; err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	return violations, nil
}
