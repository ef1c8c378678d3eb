package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veloxchat/sentinel/pkg/domain"
	"github.com/veloxchat/sentinel/pkg/domain/ban"
	"gorm.io/gorm"
)

type BanRepository struct {
	db *gorm.DB
}

func NewBanRepository(db *gorm.DB) ban.Repository {
	return &BanRepository{
		db: db,
	}
}

func (r *BanRepository) GetActive(ctx context.Context, userID, channelID string) (*ban.Ban, error) {
	entity := new(ban.Ban)
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ? AND is_active = ?", userID, channelID, true).
		Order("banned_at DESC").
		First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch active ban: %w", err)
	}
	return entity, nil
}

func (r *BanRepository) Insert(ctx context.Context, b *ban.Ban) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("failed to insert ban: %w", err)
	}
	return nil
}

func (r *BanRepository) Update(ctx context.Context, b *ban.Ban) error {
	res := r.db.WithContext(ctx).
		Model(&ban.Ban{}).
		Where("id = ?", b.ID).
		Select("*").
		Omit("id").
		Updates(b)
	if res.Error != nil {
		return fmt.Errorf("failed to update ban: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("ban", b.ID.String())
	}
	return nil
}

func (r *BanRepository) ListActive(ctx context.Context, channelID string) ([]*ban.Ban, error) {
	var bans []*ban.Ban
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if channelID != "" {
		q = q.Where("channel_id = ?", channelID)
	}
	if err := q.Order("banned_at DESC").Find(&bans).Error; err != nil {
		return nil, fmt.Errorf("failed to list active bans: %w", err)
	}
	return bans, nil
}

func (r *BanRepository) ListExpiredActive(ctx context.Context, now time.Time) ([]*ban.Ban, error) {
	var bans []*ban.Ban
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND ban_type = ? AND banned_until <= ?", true, domain.BanTypeTemporary, now).
		Find(&bans).Error; err != nil {
		return nil, fmt.Errorf("failed to list expired bans: %w", err)
	}
	return bans, nil
}
