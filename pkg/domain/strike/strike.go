package strike

import (
	"time"

	"github.com/google/uuid"
	"github.com/veloxchat/sentinel/pkg/domain"
)

// BanStatus tracks the ban state embedded in a strike record.
type BanStatus string

const (
	BanStatusNone      BanStatus = "none"
	BanStatusTemporary BanStatus = "temporary"
	BanStatusPermanent BanStatus = "permanent"
)

// Record accumulates violation history for one user within one channel.
// It is created lazily on the first violation and never deleted.
type Record struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          string     `json:"user_id" gorm:"index:idx_strikes_user_channel,unique"`
	ChannelID       string     `json:"channel_id" gorm:"index:idx_strikes_user_channel,unique"`
	StrikeCount     int        `json:"strike_count"`
	LastViolationAt *time.Time `json:"last_violation_at"`
	StrikesResetAt  time.Time  `json:"strikes_reset_at"`
	BanStatus       BanStatus  `json:"ban_status"`
	BanExpiresAt    *time.Time `json:"ban_expires_at"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Record) TableName() string {
	return "public.user_strikes"
}

// NewRecord creates a clean strike record for a (user, channel) pair.
func NewRecord(userID, channelID string, resetWindow time.Duration) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:             uuid.New(),
		UserID:         userID,
		ChannelID:      channelID,
		StrikeCount:    0,
		StrikesResetAt: now.Add(resetWindow),
		BanStatus:      BanStatusNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ShouldReset reports whether the reset window has elapsed, meaning the
// next violation opens a fresh strike cycle.
func (r *Record) ShouldReset(now time.Time) bool {
	return !now.Before(r.StrikesResetAt)
}

// Increment adds one strike and stamps the violation time.
func (r *Record) Increment(now time.Time) int {
	r.StrikeCount++
	r.LastViolationAt = &now
	r.UpdatedAt = now
	return r.StrikeCount
}

// Reset zeroes the strike count and opens a new reset window.
func (r *Record) Reset(now time.Time, resetWindow time.Duration) {
	r.StrikeCount = 0
	r.LastViolationAt = nil
	r.StrikesResetAt = now.Add(resetWindow)
	r.UpdatedAt = now
}

// ApplyTemporaryBan marks the record banned until the given time.
func (r *Record) ApplyTemporaryBan(now, until time.Time) {
	r.BanStatus = BanStatusTemporary
	r.BanExpiresAt = &until
	r.UpdatedAt = now
}

// ApplyPermanentBan marks the record permanently banned. A permanent
// ban never carries an expiry.
func (r *Record) ApplyPermanentBan(now time.Time) {
	r.BanStatus = BanStatusPermanent
	r.BanExpiresAt = nil
	r.UpdatedAt = now
}

// Unban clears the ban fields. Strikes are untouched.
func (r *Record) Unban(now time.Time) {
	r.BanStatus = BanStatusNone
	r.BanExpiresAt = nil
	r.UpdatedAt = now
}

func (r *Record) IsBanned() bool {
	return r.BanStatus != BanStatusNone
}

// IsBanExpired reports whether a temporary ban has run out. Permanent
// bans never expire.
func (r *Record) IsBanExpired(now time.Time) bool {
	if r.BanStatus != BanStatusTemporary {
		return false
	}
	return r.BanExpiresAt != nil && !now.Before(*r.BanExpiresAt)
}

// BanTypeForStatus maps the embedded status to a ban type where one
// exists.
func (r *Record) BanType() (domain.BanType, bool) {
	switch r.BanStatus {
	case BanStatusTemporary:
		return domain.BanTypeTemporary, true
	case BanStatusPermanent:
		return domain.BanTypePermanent, true
	default:
		return "", false
	}
}
