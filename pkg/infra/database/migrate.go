package database

import (
	"fmt"

	"github.com/veloxchat/sentinel/pkg/domain/ban"
	"github.com/veloxchat/sentinel/pkg/domain/blacklist"
	"github.com/veloxchat/sentinel/pkg/domain/strike"
	"github.com/veloxchat/sentinel/pkg/domain/violation"
)

// Migrate creates or updates the moderation tables.
func (db *DB) Migrate() error {
	if err := db.AutoMigrate(
		&strike.Record{},
		&ban.Ban{},
		&violation.Violation{},
		&blacklist.Entry{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
