package ban

import (
	"time"

	"github.com/google/uuid"
	"github.com/veloxchat/sentinel/pkg/domain"
)

// Ban is one row of the append-only ban history. At most one row per
// (user, channel) is active at a time; rows are deactivated on unban or
// expiry, never deleted.
type Ban struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          string         `json:"user_id" gorm:"index:idx_bans_user_channel"`
	ChannelID       string         `json:"channel_id" gorm:"index:idx_bans_user_channel"`
	BanType         domain.BanType `json:"ban_type"`
	Reason          string         `json:"reason" gorm:"size:500"`
	BannedAt        time.Time      `json:"banned_at"`
	BannedUntil     *time.Time     `json:"banned_until"`
	BannedBy        string         `json:"banned_by"`
	IsActive        bool           `json:"is_active" gorm:"index"`
	TotalViolations int            `json:"total_violations"`
	UnbannedAt      *time.Time     `json:"unbanned_at"`
	UnbannedBy      *string        `json:"unbanned_by"`
	UnbanReason     *string        `json:"unban_reason"`
}

func (Ban) TableName() string {
	return "public.bans"
}

// NewTemporary creates an active temporary ban expiring at until.
func NewTemporary(userID, channelID, reason string, until time.Time, totalViolations int, bannedBy string) *Ban {
	return &Ban{
		ID:              uuid.New(),
		UserID:          userID,
		ChannelID:       channelID,
		BanType:         domain.BanTypeTemporary,
		Reason:          reason,
		BannedAt:        time.Now().UTC(),
		BannedUntil:     &until,
		BannedBy:        bannedBy,
		IsActive:        true,
		TotalViolations: totalViolations,
	}
}

// NewPermanent creates an active permanent ban. BannedUntil stays nil.
func NewPermanent(userID, channelID, reason string, totalViolations int, bannedBy string) *Ban {
	return &Ban{
		ID:              uuid.New(),
		UserID:          userID,
		ChannelID:       channelID,
		BanType:         domain.BanTypePermanent,
		Reason:          reason,
		BannedAt:        time.Now().UTC(),
		BannedBy:        bannedBy,
		IsActive:        true,
		TotalViolations: totalViolations,
	}
}

// Deactivate closes the ban, stamping who lifted it and why.
func (b *Ban) Deactivate(unbannedBy string, reason string) {
	now := time.Now().UTC()
	b.IsActive = false
	b.UnbannedAt = &now
	b.UnbannedBy = &unbannedBy
	if reason != "" {
		b.UnbanReason = &reason
	}
}

// IsExpired reports whether a temporary ban's window has passed.
func (b *Ban) IsExpired(now time.Time) bool {
	if b.BanType == domain.BanTypePermanent {
		return false
	}
	return b.BannedUntil != nil && !now.Before(*b.BannedUntil)
}
