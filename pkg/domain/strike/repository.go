package strike

import (
	"context"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=strike_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Get returns the record for the pair, or a not-found error when
	// none exists yet.
	Get(ctx context.Context, userID, channelID string) (*Record, error)
	// Create inserts a new record.
	Create(ctx context.Context, record *Record) error
	// Update persists a mutated record. Implementations must reject the
	// write with domain.ErrConflictRetry when the stored version no
	// longer matches the record's version.
	Update(ctx context.Context, record *Record) error
	// ListBanned returns banned records, optionally filtered by channel.
	ListBanned(ctx context.Context, channelID string) ([]*Record, error)
}
