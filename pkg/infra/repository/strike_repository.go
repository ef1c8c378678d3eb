package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/veloxchat/sentinel/pkg/domain"
	"github.com/veloxchat/sentinel/pkg/domain/strike"
	"gorm.io/gorm"
)

type StrikeRepository struct {
	db *gorm.DB
}

func NewStrikeRepository(db *gorm.DB) strike.Repository {
	return &StrikeRepository{
		db: db,
	}
}

func (r *StrikeRepository) Get(ctx context.Context, userID, channelID string) (*strike.Record, error) {
	entity := new(strike.Record)
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("strike record", userID+"/"+channelID)
		}
		return nil, fmt.Errorf("failed to fetch strike record: %w", err)
	}
	return entity, nil
}

func (r *StrikeRepository) Create(ctx context.Context, record *strike.Record) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create strike record: %w", err)
	}
	return nil
}

// Update persists the record guarded by its version column. A row whose
// stored version moved on is reported as a conflict so the caller can
// reload and retry.
func (r *StrikeRepository) Update(ctx context.Context, record *strike.Record) error {
	currentVersion := record.Version
	record.Version = currentVersion + 1

	res := r.db.WithContext(ctx).
		Model(&strike.Record{}).
		Where("id = ? AND version = ?", record.ID, currentVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(record)
	if res.Error != nil {
		record.Version = currentVersion
		return fmt.Errorf("failed to update strike record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		record.Version = currentVersion
		return domain.ErrConflictRetry
	}
	return nil
}

func (r *StrikeRepository) ListBanned(ctx context.Context, channelID string) ([]*strike.Record, error) {
	var records []*strike.Record
	q := r.db.WithContext(ctx).Where("ban_status <> ?", strike.BanStatusNone)
	if channelID != "" {
		q = q.Where("channel_id = ?", channelID)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list banned records: %w", err)
	}
	return records, nil
}
