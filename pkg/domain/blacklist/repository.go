package blacklist

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=blacklist_repository_mock.go --case=underscore --with-expecter
type Repository interface {
	// ListActive returns every active entry across all languages.
	ListActive(ctx context.Context) ([]*Entry, error)
	// GetByTermAndLanguage resolves one entry; nil when absent.
	GetByTermAndLanguage(ctx context.Context, term, language string) (*Entry, error)
	// Upsert inserts the entry or reactivates/updates an existing one
	// with the same (term, language).
	Upsert(ctx context.Context, entry *Entry) error
	// Deactivate soft-deletes an entry. Returns false when the ID does
	// not exist.
	Deactivate(ctx context.Context, id uuid.UUID) (bool, error)
	// Stats aggregates dictionary counts.
	Stats(ctx context.Context) (*Stats, error)
}
