package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/veloxchat/sentinel/pkg/domain/violation"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Insert(ctx context.Context, v *violation.Violation) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *Repository) ListByUserAndChannel(ctx context.Context, userID, channelID string, limit int) ([]*violation.Violation, error) {
	args := m.Called(ctx, userID, channelID, limit)
	if vs, ok := args.Get(0).([]*violation.Violation); ok {
		return vs, args.Error(1)
	}
	return nil, args.Error(1)
}
