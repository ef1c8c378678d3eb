package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	appStrike "github.com/veloxchat/sentinel/pkg/app/strike"
	"github.com/veloxchat/sentinel/pkg/domain"
	"github.com/veloxchat/sentinel/pkg/domain/ban"
)

type Manager struct {
	mock.Mock
}

func (m *Manager) ApplyStrike(ctx context.Context, userID, channelID string, severity domain.Severity, reason string) (*appStrike.Outcome, error) {
	args := m.Called(ctx, userID, channelID, severity, reason)
	if out, ok := args.Get(0).(*appStrike.Outcome); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Manager) IsBanned(ctx context.Context, userID, channelID string) (bool, *ban.Ban, error) {
	args := m.Called(ctx, userID, channelID)
	var b *ban.Ban
	if v, ok := args.Get(1).(*ban.Ban); ok {
		b = v
	}
	return args.Bool(0), b, args.Error(2)
}

func (m *Manager) Unban(ctx context.Context, userID, channelID, actor, reason string) (bool, error) {
	args := m.Called(ctx, userID, channelID, actor, reason)
	return args.Bool(0), args.Error(1)
}

func (m *Manager) ResetStrikes(ctx context.Context, userID, channelID string) (bool, error) {
	args := m.Called(ctx, userID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *Manager) SweepExpiredBans(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *Manager) GetStatus(ctx context.Context, userID, channelID string) (*appStrike.Status, error) {
	args := m.Called(ctx, userID, channelID)
	if s, ok := args.Get(0).(*appStrike.Status); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Manager) CurrentStrikeCount(ctx context.Context, userID, channelID string) (int, error) {
	args := m.Called(ctx, userID, channelID)
	return args.Int(0), args.Error(1)
}
