package strike

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veloxchat/sentinel/pkg/domain"
	domainBan "github.com/veloxchat/sentinel/pkg/domain/ban"
	domainStrike "github.com/veloxchat/sentinel/pkg/domain/strike"
	"github.com/veloxchat/sentinel/pkg/infra/metrics"
)

const systemActor = "system"

// Config carries the escalation ladder. MaxStrikesTempBan must be
// strictly lower than MaxStrikesPermBan.
type Config struct {
	MaxStrikesTempBan int
	MaxStrikesPermBan int
	TempBanDuration   time.Duration
	StrikeResetWindow time.Duration
}

// BanInfo is the caller-facing slice of an active ban.
type BanInfo struct {
	Type      domain.BanType `json:"type"`
	ExpiresAt *time.Time     `json:"expires_at"`
	Reason    string         `json:"reason"`
}

// Outcome reports what applying one strike did.
type Outcome struct {
	Action      domain.Action
	StrikeCount int
	BanInfo     *BanInfo
}

// Status is the read-side view of a (user, channel) pair.
type Status struct {
	UserID         string     `json:"user_id"`
	ChannelID      string     `json:"channel_id"`
	StrikeCount    int        `json:"strike_count"`
	IsBanned       bool       `json:"is_banned"`
	BanType        *string    `json:"ban_type"`
	BanExpiresAt   *time.Time `json:"ban_expires_at"`
	StrikesResetAt *time.Time `json:"strikes_reset_at"`
	LastViolation  *time.Time `json:"last_violation"`
}

//go:generate mockery --name=Manager --dir=. --output=./mocks --filename=strike_manager_mock.go --case=underscore --with-expecter
type Manager interface {
	ApplyStrike(ctx context.Context, userID, channelID string, severity domain.Severity, reason string) (*Outcome, error)
	IsBanned(ctx context.Context, userID, channelID string) (bool, *domainBan.Ban, error)
	Unban(ctx context.Context, userID, channelID, actor, reason string) (bool, error)
	ResetStrikes(ctx context.Context, userID, channelID string) (bool, error)
	SweepExpiredBans(ctx context.Context) (int, error)
	GetStatus(ctx context.Context, userID, channelID string) (*Status, error)
	CurrentStrikeCount(ctx context.Context, userID, channelID string) (int, error)
}

type manager struct {
	strikes domainStrike.Repository
	bans    domainBan.Repository
	cfg     Config
	locks   *keyedLock
	logger  *logrus.Logger
	now     func() time.Time
}

func NewManager(
	strikes domainStrike.Repository,
	bans domainBan.Repository,
	cfg Config,
	logger *logrus.Logger,
) Manager {
	return &manager{
		strikes: strikes,
		bans:    bans,
		cfg:     cfg,
		locks:   newKeyedLock(),
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func pairKey(userID, channelID string) string {
	return userID + ":" + channelID
}

// ApplyStrike runs the escalation ladder for one violation. The whole
// read-modify-write is serialized per (user, channel) by an in-process
// lock; a version conflict from a sibling process triggers one reload
// and retry.
func (m *manager) ApplyStrike(ctx context.Context, userID, channelID string, severity domain.Severity, reason string) (*Outcome, error) {
	lock := m.locks.lock(pairKey(userID, channelID))
	defer lock.Unlock()

	outcome, err := m.applyStrikeLocked(ctx, userID, channelID, reason)
	if errors.Is(err, domain.ErrConflictRetry) {
		outcome, err = m.applyStrikeLocked(ctx, userID, channelID, reason)
	}
	if err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"channel_id": channelID,
		"count":      outcome.StrikeCount,
		"severity":   severity,
		"action":     outcome.Action,
	}).Info("strike applied")

	return outcome, nil
}

func (m *manager) applyStrikeLocked(ctx context.Context, userID, channelID, reason string) (*Outcome, error) {
	record, created, err := m.getOrCreate(ctx, userID, channelID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	// An elapsed reset window opens a fresh cycle: this violation
	// becomes strike #1, not N+1.
	if record.ShouldReset(now) {
		record.Reset(now, m.cfg.StrikeResetWindow)
	}
	count := record.Increment(now)

	switch {
	case count >= m.cfg.MaxStrikesPermBan:
		return m.escalate(ctx, record, created, domain.BanTypePermanent, reason, now)
	case count >= m.cfg.MaxStrikesTempBan:
		return m.escalate(ctx, record, created, domain.BanTypeTemporary, reason, now)
	default:
		if err := m.persist(ctx, record, created); err != nil {
			return nil, err
		}
		return &Outcome{Action: domain.ActionWarning, StrikeCount: count}, nil
	}
}

// escalate writes the strike update and the ban row as one logical
// unit. The strike record is persisted first with its ban fields set;
// if the ban insert then fails, the flags are rolled back so no reader
// is left seeing a ban-active flag without its BanRecord.
func (m *manager) escalate(ctx context.Context, record *domainStrike.Record, created bool, banType domain.BanType, reason string, now time.Time) (*Outcome, error) {
	var banRow *domainBan.Ban
	var info BanInfo

	if banType == domain.BanTypePermanent {
		record.ApplyPermanentBan(now)
		banRow = domainBan.NewPermanent(record.UserID, record.ChannelID, reason, record.StrikeCount, systemActor)
		info = BanInfo{Type: domain.BanTypePermanent, Reason: reason}
	} else {
		until := now.Add(m.cfg.TempBanDuration)
		record.ApplyTemporaryBan(now, until)
		banRow = domainBan.NewTemporary(record.UserID, record.ChannelID, reason, until, record.StrikeCount, systemActor)
		info = BanInfo{Type: domain.BanTypeTemporary, ExpiresAt: &until, Reason: reason}
	}

	if err := m.persist(ctx, record, created); err != nil {
		return nil, err
	}

	if err := m.bans.Insert(ctx, banRow); err != nil {
		record.Unban(now)
		if revertErr := m.strikes.Update(ctx, record); revertErr != nil {
			m.logger.WithError(revertErr).WithFields(logrus.Fields{
				"user_id":    record.UserID,
				"channel_id": record.ChannelID,
			}).Error("failed to revert ban flags after ban insert failure")
		}
		return nil, fmt.Errorf("failed to record ban: %w", err)
	}

	action := domain.ActionTempBan
	entry := m.logger.WithFields(logrus.Fields{
		"user_id":    record.UserID,
		"channel_id": record.ChannelID,
		"ban_type":   banType,
	})
	if banType == domain.BanTypePermanent {
		action = domain.ActionPermBan
		entry.Warn("permanent ban applied")
	} else {
		entry.WithField("until", info.ExpiresAt).Warn("temporary ban applied")
	}

	return &Outcome{Action: action, StrikeCount: record.StrikeCount, BanInfo: &info}, nil
}

// IsBanned answers the ban state for a pair. An expired temporary ban
// self-heals here: the unban transition runs before the negative
// answer is returned.
func (m *manager) IsBanned(ctx context.Context, userID, channelID string) (bool, *domainBan.Ban, error) {
	record, err := m.strikes.Get(ctx, userID, channelID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return false, nil, nil
		}
		return false, nil, err
	}

	if !record.IsBanned() {
		return false, nil, nil
	}

	if record.IsBanExpired(m.now()) {
		if _, err := m.Unban(ctx, userID, channelID, systemActor, "temporary ban expired"); err != nil {
			return false, nil, fmt.Errorf("failed to lift expired ban: %w", err)
		}
		return false, nil, nil
	}

	activeBan, err := m.bans.GetActive(ctx, userID, channelID)
	if err != nil {
		return false, nil, err
	}
	if activeBan == nil {
		// Ban flag without a ban row indicates a partial write
		// somewhere. Serve the flag, log the inconsistency.
		m.logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"channel_id": channelID,
			"ban_status": record.BanStatus,
		}).Error("strike record flagged banned but no active ban row found")
	}
	return true, activeBan, nil
}

func (m *manager) Unban(ctx context.Context, userID, channelID, actor, reason string) (bool, error) {
	lock := m.locks.lock(pairKey(userID, channelID))
	defer lock.Unlock()

	activeBan, err := m.bans.GetActive(ctx, userID, channelID)
	if err != nil {
		return false, err
	}

	record, err := m.strikes.Get(ctx, userID, channelID)
	if err != nil && !domain.IsNotFoundError(err) {
		return false, err
	}

	hasFlag := record != nil && record.IsBanned()
	if activeBan == nil && !hasFlag {
		return false, nil
	}

	if activeBan != nil {
		activeBan.Deactivate(actor, reason)
		if err := m.bans.Update(ctx, activeBan); err != nil {
			return false, fmt.Errorf("failed to deactivate ban: %w", err)
		}
	}

	if hasFlag {
		record.Unban(m.now())
		if err := m.strikes.Update(ctx, record); err != nil {
			if errors.Is(err, domain.ErrConflictRetry) {
				reloaded, reloadErr := m.strikes.Get(ctx, userID, channelID)
				if reloadErr != nil {
					return false, reloadErr
				}
				reloaded.Unban(m.now())
				if err := m.strikes.Update(ctx, reloaded); err != nil {
					return false, fmt.Errorf("failed to clear ban flags: %w", err)
				}
			} else {
				return false, fmt.Errorf("failed to clear ban flags: %w", err)
			}
		}
	}

	m.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"channel_id": channelID,
		"by":         actor,
	}).Info("user unbanned")

	return true, nil
}

// ResetStrikes zeroes the counter independently of ban status.
func (m *manager) ResetStrikes(ctx context.Context, userID, channelID string) (bool, error) {
	lock := m.locks.lock(pairKey(userID, channelID))
	defer lock.Unlock()

	record, err := m.strikes.Get(ctx, userID, channelID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	record.Reset(m.now(), m.cfg.StrikeResetWindow)
	if err := m.strikes.Update(ctx, record); err != nil {
		return false, fmt.Errorf("failed to reset strikes: %w", err)
	}

	m.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"channel_id": channelID,
	}).Info("strikes reset")

	return true, nil
}

// SweepExpiredBans is the eventual-consistency backstop for the lazy
// expiry in IsBanned: both paths share the banned_until predicate.
func (m *manager) SweepExpiredBans(ctx context.Context) (int, error) {
	expired, err := m.bans.ListExpiredActive(ctx, m.now())
	if err != nil {
		return 0, err
	}

	count := 0
	for _, b := range expired {
		ok, err := m.Unban(ctx, b.UserID, b.ChannelID, systemActor, "temporary ban expired")
		if err != nil {
			m.logger.WithError(err).WithFields(logrus.Fields{
				"user_id":    b.UserID,
				"channel_id": b.ChannelID,
			}).Error("failed to expire ban during sweep")
			continue
		}
		if ok {
			count++
		}
	}

	if count > 0 {
		metrics.BansSwept.Add(float64(count))
		m.logger.WithField("count", count).Info("expired bans swept")
	}
	return count, nil
}

func (m *manager) GetStatus(ctx context.Context, userID, channelID string) (*Status, error) {
	record, err := m.strikes.Get(ctx, userID, channelID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return &Status{UserID: userID, ChannelID: channelID}, nil
		}
		return nil, err
	}

	status := &Status{
		UserID:         userID,
		ChannelID:      channelID,
		StrikeCount:    record.StrikeCount,
		IsBanned:       record.IsBanned(),
		BanExpiresAt:   record.BanExpiresAt,
		StrikesResetAt: &record.StrikesResetAt,
		LastViolation:  record.LastViolationAt,
	}
	if banType, ok := record.BanType(); ok {
		s := string(banType)
		status.BanType = &s
	}
	return status, nil
}

// CurrentStrikeCount reads the counter without side effects.
func (m *manager) CurrentStrikeCount(ctx context.Context, userID, channelID string) (int, error) {
	record, err := m.strikes.Get(ctx, userID, channelID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return 0, nil
		}
		return 0, err
	}
	return record.StrikeCount, nil
}

func (m *manager) getOrCreate(ctx context.Context, userID, channelID string) (*domainStrike.Record, bool, error) {
	record, err := m.strikes.Get(ctx, userID, channelID)
	if err == nil {
		return record, false, nil
	}
	if !domain.IsNotFoundError(err) {
		return nil, false, err
	}
	return domainStrike.NewRecord(userID, channelID, m.cfg.StrikeResetWindow), true, nil
}

func (m *manager) persist(ctx context.Context, record *domainStrike.Record, created bool) error {
	if created {
		return m.strikes.Create(ctx, record)
	}
	return m.strikes.Update(ctx, record)
}
