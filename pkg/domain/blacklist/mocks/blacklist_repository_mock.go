package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/veloxchat/sentinel/pkg/domain/blacklist"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) ListActive(ctx context.Context) ([]*blacklist.Entry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]*blacklist.Entry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) GetByTermAndLanguage(ctx context.Context, term, language string) (*blacklist.Entry, error) {
	args := m.Called(ctx, term, language)
	if e, ok := args.Get(0).(*blacklist.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Upsert(ctx context.Context, entry *blacklist.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *Repository) Deactivate(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *Repository) Stats(ctx context.Context) (*blacklist.Stats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*blacklist.Stats); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
