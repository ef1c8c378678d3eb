package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/veloxchat/sentinel/pkg/domain/ban"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) GetActive(ctx context.Context, userID, channelID string) (*ban.Ban, error) {
	args := m.Called(ctx, userID, channelID)
	if b, ok := args.Get(0).(*ban.Ban); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Insert(ctx context.Context, b *ban.Ban) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *Repository) Update(ctx context.Context, b *ban.Ban) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *Repository) ListActive(ctx context.Context, channelID string) ([]*ban.Ban, error) {
	args := m.Called(ctx, channelID)
	if bans, ok := args.Get(0).([]*ban.Ban); ok {
		return bans, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) ListExpiredActive(ctx context.Context, now time.Time) ([]*ban.Ban, error) {
	args := m.Called(ctx, now)
	if bans, ok := args.Get(0).([]*ban.Ban); ok {
		return bans, args.Error(1)
	}
	return nil, args.Error(1)
}
