package violation

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/veloxchat/sentinel/pkg/domain"
)

// Violation is one append-only row per flagged message. The raw text is
// never persisted; only a one-way fingerprint of it.
type Violation struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID             string          `json:"user_id" gorm:"index:idx_violations_user_channel"`
	ChannelID          string          `json:"channel_id" gorm:"index:idx_violations_user_channel"`
	MessageID          string          `json:"message_id" gorm:"uniqueIndex"`
	ContentFingerprint string          `json:"content_fingerprint"`
	DetectedWords      DetectedWords   `json:"detected_words" gorm:"type:jsonb"`
	ToxicityScore      float64         `json:"toxicity_score"`
	Severity           domain.Severity `json:"severity"`
	ActionTaken        domain.Action   `json:"action_taken"`
	StrikeCountAtTime  int             `json:"strike_count_at_time"`
	CreatedAt          time.Time       `json:"created_at"`
}

func (Violation) TableName() string {
	return "public.violations"
}

// Fingerprint hashes message content so violations can be correlated
// without storing the text itself.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
