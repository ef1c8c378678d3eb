package moderation

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/strike"
	domainBan "github.com/veloxchat/sentinel/pkg/domain/ban"
	"github.com/veloxchat/sentinel/pkg/domain/violation"
	"github.com/veloxchat/sentinel/pkg/infra/events"
)

const defaultViolationLimit = 50

// GetUserStatus returns the strike and ban state for a pair. Reading
// the state runs the same lazy expiry as the moderation path, so a
// stale temporary ban never shows as active.
func (s *Service) GetUserStatus(ctx context.Context, userID, channelID string) (*strike.Status, error) {
	if userID == "" || channelID == "" {
		return nil, ErrMissingMessage
	}
	if _, _, err := s.strikes.IsBanned(ctx, userID, channelID); err != nil {
		return nil, err
	}
	return s.strikes.GetStatus(ctx, userID, channelID)
}

// GetUserViolations returns the newest violations for a pair.
func (s *Service) GetUserViolations(ctx context.Context, userID, channelID string, limit int) ([]*violation.Violation, error) {
	if userID == "" || channelID == "" {
		return nil, ErrMissingMessage
	}
	if limit <= 0 {
		limit = defaultViolationLimit
	}
	return s.violations.ListByUserAndChannel(ctx, userID, channelID, limit)
}

// GetBannedUsers lists currently active bans, optionally scoped to one
// channel.
func (s *Service) GetBannedUsers(ctx context.Context, channelID string) ([]*domainBan.Ban, error) {
	return s.bans.ListActive(ctx, channelID)
}

// UnbanUser lifts an active ban on behalf of a moderator and optionally
// zeroes the strike counter so the next violation starts a fresh cycle.
func (s *Service) UnbanUser(ctx context.Context, userID, channelID, actor, reason string, resetStrikes bool) (bool, error) {
	if userID == "" || channelID == "" {
		return false, ErrMissingMessage
	}
	if actor == "" {
		actor = "moderator"
	}

	lifted, err := s.strikes.Unban(ctx, userID, channelID, actor, reason)
	if err != nil {
		return false, fmt.Errorf("unban failed: %w", err)
	}
	if !lifted {
		return false, nil
	}

	if resetStrikes {
		if _, err := s.strikes.ResetStrikes(ctx, userID, channelID); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"user_id":    userID,
				"channel_id": channelID,
			}).Error("failed to reset strikes after unban")
		}
	}

	s.publish(ctx, events.TypeUserUnbanned, events.UserUnbannedPayload{
		UserID:     userID,
		ChannelID:  channelID,
		UnbannedBy: actor,
		Reason:     reason,
	})

	return true, nil
}

// SweepExpiredBans lifts all temporary bans past their window.
func (s *Service) SweepExpiredBans(ctx context.Context) (int, error) {
	return s.strikes.SweepExpiredBans(ctx)
}
