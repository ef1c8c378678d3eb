package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/veloxchat/sentinel/pkg/infra/classifier"
)

type Scorer struct {
	mock.Mock
}

func (m *Scorer) Score(ctx context.Context, text string) (classifier.Scores, error) {
	args := m.Called(ctx, text)
	if scores, ok := args.Get(0).(classifier.Scores); ok {
		return scores, args.Error(1)
	}
	return nil, args.Error(1)
}
