package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/veloxchat/sentinel/pkg/domain/blacklist"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) blacklist.Repository {
	return &BlacklistRepository{
		db: db,
	}
}

func (r *BlacklistRepository) ListActive(ctx context.Context) ([]*blacklist.Entry, error) {
	var entries []*blacklist.Entry
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list active blacklist entries: %w", err)
	}
	return entries, nil
}

func (r *BlacklistRepository) GetByTermAndLanguage(ctx context.Context, term, language string) (*blacklist.Entry, error) {
	entity := new(blacklist.Entry)
	if err := r.db.WithContext(ctx).
		Where("term = ? AND language = ? AND is_active = ?", term, language, true).
		First(entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch blacklist entry: %w", err)
	}
	return entity, nil
}

func (r *BlacklistRepository) Upsert(ctx context.Context, entry *blacklist.Entry) error {
	entry.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "term"}, {Name: "language"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category", "severity", "is_regex", "is_active", "added_by", "notes", "updated_at",
			}),
		}).
		Create(entry).Error; err != nil {
		return fmt.Errorf("failed to upsert blacklist entry: %w", err)
	}
	return nil
}

func (r *BlacklistRepository) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&blacklist.Entry{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to deactivate blacklist entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *BlacklistRepository) Stats(ctx context.Context) (*blacklist.Stats, error) {
	stats := &blacklist.Stats{
		ByLanguage: make(map[string]int64),
		BySeverity: make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&blacklist.Entry{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count blacklist entries: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&blacklist.Entry{}).
		Where("is_active = ?", true).
		Count(&stats.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to count active blacklist entries: %w", err)
	}

	type groupCount struct {
		Key   string
		Count int64
	}

	var byLang []groupCount
	if err := r.db.WithContext(ctx).Model(&blacklist.Entry{}).
		Select("language AS key, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("language").
		Scan(&byLang).Error; err != nil {
		return nil, fmt.Errorf("failed to group blacklist entries by language: %w", err)
	}
	for _, g := range byLang {
		stats.ByLanguage[g.Key] = g.Count
	}

	var bySev []groupCount
	if err := r.db.WithContext(ctx).Model(&blacklist.Entry{}).
		Select("severity AS key, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("severity").
		Scan(&bySev).Error; err != nil {
		return nil, fmt.Errorf("failed to group blacklist entries by severity: %w", err)
	}
	for _, g := range bySev {
		stats.BySeverity[g.Key] = g.Count
	}

	return stats, nil
}
