package ban

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=ban_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// GetActive returns the single active ban for the pair, or nil when
	// none exists.
	GetActive(ctx context.Context, userID, channelID string) (*Ban, error)
	// Insert appends a new ban row.
	Insert(ctx context.Context, ban *Ban) error
	// Update persists changes to an existing row (deactivation only).
	Update(ctx context.Context, ban *Ban) error
	// ListActive returns all active bans, optionally filtered by channel.
	ListActive(ctx context.Context, channelID string) ([]*Ban, error)
	// ListExpiredActive returns active temporary bans whose window has
	// passed as of now.
	ListExpiredActive(ctx context.Context, now time.Time) ([]*Ban, error)
}
