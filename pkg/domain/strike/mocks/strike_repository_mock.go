package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/veloxchat/sentinel/pkg/domain/strike"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Get(ctx context.Context, userID, channelID string) (*strike.Record, error) {
	args := m.Called(ctx, userID, channelID)
	if rec, ok := args.Get(0).(*strike.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Create(ctx context.Context, record *strike.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *Repository) Update(ctx context.Context, record *strike.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *Repository) ListBanned(ctx context.Context, channelID string) ([]*strike.Record, error) {
	args := m.Called(ctx, channelID)
	if recs, ok := args.Get(0).([]*strike.Record); ok {
		return recs, args.Error(1)
	}
	return nil, args.Error(1)
}
