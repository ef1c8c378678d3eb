package events

import (
	"context"
	"time"

	"github.com/veloxchat/sentinel/pkg/domain"
)

const (
	TypeMessageBlocked = "moderation.message_blocked"
	TypeWarning        = "moderation.warning"
	TypeUserBanned     = "moderation.user_banned"
	TypeUserUnbanned   = "moderation.user_unbanned"
)

// Event is the envelope published to the bus.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

type MessageBlockedPayload struct {
	UserID        string   `json:"user_id"`
	ChannelID     string   `json:"channel_id"`
	MessageID     string   `json:"message_id"`
	Reason        string   `json:"reason"`
	ToxicityScore float64  `json:"toxicity_score"`
	DetectedWords []string `json:"detected_words"`
}

type WarningPayload struct {
	UserID        string          `json:"user_id"`
	ChannelID     string          `json:"channel_id"`
	MessageID     string          `json:"message_id"`
	StrikeCount   int             `json:"strike_count"`
	Severity      domain.Severity `json:"severity"`
	ToxicityScore float64         `json:"toxicity_score"`
}

type UserBannedPayload struct {
	UserID      string         `json:"user_id"`
	ChannelID   string         `json:"channel_id"`
	BanType     domain.BanType `json:"ban_type"`
	BannedUntil *time.Time     `json:"banned_until"`
	Reason      string         `json:"reason"`
	StrikeCount int            `json:"strike_count"`
}

type UserUnbannedPayload struct {
	UserID     string `json:"user_id"`
	ChannelID  string `json:"channel_id"`
	UnbannedBy string `json:"unbanned_by"`
	Reason     string `json:"reason"`
}

// Publisher delivers domain events. Implementations are fire-and-
// forget; delivery failures must never fail the moderation call.
//
//go:generate mockery --name=Publisher --dir=. --output=./mocks --filename=publisher_mock.go --case=underscore --with-expecter
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
}

// NewEvent stamps the envelope.
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
