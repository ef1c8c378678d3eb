package blacklist

import (
	"time"

	"github.com/google/uuid"
	"github.com/veloxchat/sentinel/pkg/domain"
)

// Entry is one banned term or pattern in the dictionary. The matcher
// keeps a derived per-language projection of active entries; this table
// remains the source of truth.
type Entry struct {
	ID       uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Term     string          `json:"term" gorm:"index:idx_blacklist_term_lang,unique"`
	Language string          `json:"language" gorm:"index:idx_blacklist_term_lang,unique"`
	Category string          `json:"category"`
	Severity domain.Severity `json:"severity"`
	IsRegex  bool            `json:"is_regex"`
	IsActive bool            `json:"is_active" gorm:"index"`
	AddedBy  string          `json:"added_by"`
	Notes    string          `json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Entry) TableName() string {
	return "public.blacklist_entries"
}

// Stats summarizes the dictionary for the admin surface.
type Stats struct {
	Total      int64            `json:"total"`
	Active     int64            `json:"active"`
	ByLanguage map[string]int64 `json:"by_language"`
	BySeverity map[string]int64 `json:"by_severity"`
}
