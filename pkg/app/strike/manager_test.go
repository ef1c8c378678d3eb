package strike_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appStrike "github.com/veloxchat/sentinel/pkg/app/strike"
	"github.com/veloxchat/sentinel/pkg/domain"
	domainBan "github.com/veloxchat/sentinel/pkg/domain/ban"
	domainStrike "github.com/veloxchat/sentinel/pkg/domain/strike"
)

// memStrikeRepo mimics the optimistic version guard of the real store.
type memStrikeRepo struct {
	mu      sync.Mutex
	records map[string]domainStrike.Record
}

func newMemStrikeRepo() *memStrikeRepo {
	return &memStrikeRepo{records: make(map[string]domainStrike.Record)}
}

func (r *memStrikeRepo) key(userID, channelID string) string {
	return userID + ":" + channelID
}

func (r *memStrikeRepo) Get(_ context.Context, userID, channelID string) (*domainStrike.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[r.key(userID, channelID)]
	if !ok {
		return nil, domain.NewNotFoundError("strike record", userID+":"+channelID)
	}
	cp := rec
	return &cp, nil
}

func (r *memStrikeRepo) Create(_ context.Context, record *domainStrike.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[r.key(record.UserID, record.ChannelID)] = *record
	return nil
}

func (r *memStrikeRepo) Update(_ context.Context, record *domainStrike.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.records[r.key(record.UserID, record.ChannelID)]
	if !ok {
		return domain.NewNotFoundError("strike record", record.UserID+":"+record.ChannelID)
	}
	if stored.Version != record.Version {
		return domain.ErrConflictRetry
	}
	record.Version++
	r.records[r.key(record.UserID, record.ChannelID)] = *record
	return nil
}

func (r *memStrikeRepo) ListBanned(_ context.Context, channelID string) ([]*domainStrike.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainStrike.Record
	for _, rec := range r.records {
		if rec.IsBanned() && (channelID == "" || rec.ChannelID == channelID) {
			cp := rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memBanRepo struct {
	mu   sync.Mutex
	bans []*domainBan.Ban
}

func (r *memBanRepo) GetActive(_ context.Context, userID, channelID string) (*domainBan.Ban, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bans {
		if b.IsActive && b.UserID == userID && b.ChannelID == channelID {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBanRepo) Insert(_ context.Context, ban *domainBan.Ban) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bans = append(r.bans, ban)
	return nil
}

func (r *memBanRepo) Update(_ context.Context, _ *domainBan.Ban) error {
	return nil
}

func (r *memBanRepo) ListActive(_ context.Context, channelID string) ([]*domainBan.Ban, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainBan.Ban
	for _, b := range r.bans {
		if b.IsActive && (channelID == "" || b.ChannelID == channelID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memBanRepo) ListExpiredActive(_ context.Context, now time.Time) ([]*domainBan.Ban, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domainBan.Ban
	for _, b := range r.bans {
		if b.IsActive && b.IsExpired(now) {
			out = append(out, b)
		}
	}
	return out, nil
}

func testConfig() appStrike.Config {
	return appStrike.Config{
		MaxStrikesTempBan: 3,
		MaxStrikesPermBan: 5,
		TempBanDuration:   24 * time.Hour,
		StrikeResetWindow: 30 * 24 * time.Hour,
	}
}

func newTestManager(strikes *memStrikeRepo, bans *memBanRepo, cfg appStrike.Config) appStrike.Manager {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return appStrike.NewManager(strikes, bans, cfg, logger)
}

func TestApplyStrike_FirstViolationIsWarning(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	manager := newTestManager(strikes, bans, testConfig())

	outcome, err := manager.ApplyStrike(context.Background(), "user-1", "channel-1", domain.SeverityMedium, "test")

	require.NoError(t, err)
	assert.Equal(t, domain.ActionWarning, outcome.Action)
	assert.Equal(t, 1, outcome.StrikeCount)
	assert.Nil(t, outcome.BanInfo)
}

func TestApplyStrike_EscalatesToTempBanAtThreshold(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	manager := newTestManager(strikes, bans, testConfig())
	ctx := context.Background()

	var outcome *appStrike.Outcome
	var err error
	for i := 0; i < 3; i++ {
		outcome, err = manager.ApplyStrike(ctx, "user-1", "channel-1", domain.SeverityMedium, "test")
		require.NoError(t, err)
	}

	assert.Equal(t, domain.ActionTempBan, outcome.Action)
	assert.Equal(t, 3, outcome.StrikeCount)
	require.NotNil(t, outcome.BanInfo)
	assert.Equal(t, domain.BanTypeTemporary, outcome.BanInfo.Type)
	require.NotNil(t, outcome.BanInfo.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *outcome.BanInfo.ExpiresAt, time.Minute)

	active, err := bans.GetActive(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, domain.BanTypeTemporary, active.BanType)
}

func TestApplyStrike_EscalatesToPermBanAtThreshold(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	record := domainStrike.NewRecord("user-1", "channel-1", cfg.StrikeResetWindow)
	record.StrikeCount = 4
	require.NoError(t, strikes.Create(ctx, record))

	outcome, err := manager.ApplyStrike(ctx, "user-1", "channel-1", domain.SeverityHigh, "test")

	require.NoError(t, err)
	assert.Equal(t, domain.ActionPermBan, outcome.Action)
	assert.Equal(t, 5, outcome.StrikeCount)
	require.NotNil(t, outcome.BanInfo)
	assert.Equal(t, domain.BanTypePermanent, outcome.BanInfo.Type)
	assert.Nil(t, outcome.BanInfo.ExpiresAt)
}

func TestApplyStrike_PermanentWinsWhenBothThresholdsPassed(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	record := domainStrike.NewRecord("user-1", "channel-1", cfg.StrikeResetWindow)
	record.StrikeCount = 9
	require.NoError(t, strikes.Create(ctx, record))

	outcome, err := manager.ApplyStrike(ctx, "user-1", "channel-1", domain.SeverityHigh, "test")

	require.NoError(t, err)
	assert.Equal(t, domain.ActionPermBan, outcome.Action)
	assert.Equal(t, 10, outcome.StrikeCount)
}

func TestApplyStrike_ElapsedResetWindowOpensFreshCycle(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	record := domainStrike.NewRecord("user-1", "channel-1", cfg.StrikeResetWindow)
	record.StrikeCount = 2
	record.StrikesResetAt = time.Now().Add(-time.Hour)
	require.NoError(t, strikes.Create(ctx, record))

	outcome, err := manager.ApplyStrike(ctx, "user-1", "channel-1", domain.SeverityLow, "test")

	require.NoError(t, err)
	assert.Equal(t, domain.ActionWarning, outcome.Action)
	assert.Equal(t, 1, outcome.StrikeCount)
}

func TestIsBanned_ExpiredTemporaryBanSelfHeals(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	record := domainStrike.NewRecord("user-1", "channel-1", cfg.StrikeResetWindow)
	record.StrikeCount = 3
	record.ApplyTemporaryBan(past.Add(-24*time.Hour), past)
	require.NoError(t, strikes.Create(ctx, record))
	require.NoError(t, bans.Insert(ctx, domainBan.NewTemporary("user-1", "channel-1", "test", past, 3, "system")))

	banned, activeBan, err := manager.IsBanned(ctx, "user-1", "channel-1")

	require.NoError(t, err)
	assert.False(t, banned)
	assert.Nil(t, activeBan)

	// the unban transition must be persisted, not just reported
	healed, err := strikes.Get(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	assert.False(t, healed.IsBanned())
	assert.Equal(t, 3, healed.StrikeCount)
}

func TestIsBanned_PermanentBanNeverExpires(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	record := domainStrike.NewRecord("user-1", "channel-1", cfg.StrikeResetWindow)
	record.StrikeCount = 5
	record.ApplyPermanentBan(time.Now().Add(-365 * 24 * time.Hour))
	require.NoError(t, strikes.Create(ctx, record))
	require.NoError(t, bans.Insert(ctx, domainBan.NewPermanent("user-1", "channel-1", "test", 5, "system")))

	banned, activeBan, err := manager.IsBanned(ctx, "user-1", "channel-1")

	require.NoError(t, err)
	assert.True(t, banned)
	require.NotNil(t, activeBan)
	assert.Equal(t, domain.BanTypePermanent, activeBan.BanType)
}

func TestIsBanned_UnknownPair(t *testing.T) {
	manager := newTestManager(newMemStrikeRepo(), &memBanRepo{}, testConfig())

	banned, activeBan, err := manager.IsBanned(context.Background(), "nobody", "nowhere")

	require.NoError(t, err)
	assert.False(t, banned)
	assert.Nil(t, activeBan)
}

func TestUnban_LiftsBanAndKeepsStrikes(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	record := domainStrike.NewRecord("user-1", "channel-1", cfg.StrikeResetWindow)
	record.StrikeCount = 3
	until := time.Now().Add(24 * time.Hour)
	record.ApplyTemporaryBan(time.Now(), until)
	require.NoError(t, strikes.Create(ctx, record))
	require.NoError(t, bans.Insert(ctx, domainBan.NewTemporary("user-1", "channel-1", "test", until, 3, "system")))

	lifted, err := manager.Unban(ctx, "user-1", "channel-1", "moderator-7", "appeal accepted")
	require.NoError(t, err)
	assert.True(t, lifted)

	healed, err := strikes.Get(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	assert.False(t, healed.IsBanned())
	assert.Equal(t, 3, healed.StrikeCount)

	// second unban is a no-op
	lifted, err = manager.Unban(ctx, "user-1", "channel-1", "moderator-7", "again")
	require.NoError(t, err)
	assert.False(t, lifted)
}

func TestSweepExpiredBans(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	expired := domainStrike.NewRecord("user-1", "channel-1", cfg.StrikeResetWindow)
	expired.ApplyTemporaryBan(past.Add(-24*time.Hour), past)
	require.NoError(t, strikes.Create(ctx, expired))
	require.NoError(t, bans.Insert(ctx, domainBan.NewTemporary("user-1", "channel-1", "old", past, 3, "system")))

	current := domainStrike.NewRecord("user-2", "channel-1", cfg.StrikeResetWindow)
	until := time.Now().Add(24 * time.Hour)
	current.ApplyTemporaryBan(time.Now(), until)
	require.NoError(t, strikes.Create(ctx, current))
	require.NoError(t, bans.Insert(ctx, domainBan.NewTemporary("user-2", "channel-1", "new", until, 3, "system")))

	count, err := manager.SweepExpiredBans(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, count)

	banned, _, err := manager.IsBanned(ctx, "user-2", "channel-1")
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestApplyStrike_ConcurrentNoLostUpdates(t *testing.T) {
	strikes := newMemStrikeRepo()
	bans := &memBanRepo{}
	cfg := testConfig()
	// thresholds out of reach so every strike stays a warning
	cfg.MaxStrikesTempBan = 50
	cfg.MaxStrikesPermBan = 100
	manager := newTestManager(strikes, bans, cfg)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := manager.ApplyStrike(ctx, "user-1", "channel-1", domain.SeverityLow, "test")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := manager.CurrentStrikeCount(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	assert.Equal(t, n, count)
}

func TestGetStatus_UnknownPairIsZeroValue(t *testing.T) {
	manager := newTestManager(newMemStrikeRepo(), &memBanRepo{}, testConfig())

	status, err := manager.GetStatus(context.Background(), "user-1", "channel-1")

	require.NoError(t, err)
	assert.Equal(t, 0, status.StrikeCount)
	assert.False(t, status.IsBanned)
	assert.Nil(t, status.BanType)
}
