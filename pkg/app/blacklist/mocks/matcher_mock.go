package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/veloxchat/sentinel/pkg/app/blacklist"
)

type Matcher struct {
	mock.Mock
}

func (m *Matcher) Check(ctx context.Context, text, language string) blacklist.Result {
	args := m.Called(ctx, text, language)
	if res, ok := args.Get(0).(blacklist.Result); ok {
		return res
	}
	return blacklist.Result{}
}

func (m *Matcher) Invalidate() {
	m.Called()
}
