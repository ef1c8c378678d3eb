package violation

import (
	"context"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=violation_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// Insert appends a violation row. Violations are immutable once
	// written.
	Insert(ctx context.Context, v *Violation) error
	// ListByUserAndChannel returns the newest violations for the pair,
	// up to limit rows.
	ListByUserAndChannel(ctx context.Context, userID, channelID string, limit int) ([]*Violation, error)
}
