package blacklist

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/veloxchat/sentinel/pkg/domain"
	domainBlacklist "github.com/veloxchat/sentinel/pkg/domain/blacklist"
	"github.com/veloxchat/sentinel/pkg/infra/cache"
)

// Manager is the admin surface over the dictionary. Every mutation
// invalidates the projection cache for all languages and notifies
// sibling processes; reads go through the matcher's read-through cache.
type Manager struct {
	repo    domainBlacklist.Repository
	matcher Matcher
	redis   *cache.Client
	logger  *logrus.Logger
}

func NewManager(
	repo domainBlacklist.Repository,
	matcher Matcher,
	redisClient *cache.Client,
	logger *logrus.Logger,
) *Manager {
	return &Manager{
		repo:    repo,
		matcher: matcher,
		redis:   redisClient,
		logger:  logger,
	}
}

// AddTerm validates and upserts a dictionary entry.
func (m *Manager) AddTerm(ctx context.Context, term, language, category string, severity domain.Severity, isRegex bool, addedBy string) (*domainBlacklist.Entry, error) {
	if !severity.IsValid() || severity == domain.SeverityNone {
		return nil, domain.ErrInvalidSeverity
	}
	if isRegex {
		if _, err := regexp.Compile(term); err != nil {
			return nil, fmt.Errorf("invalid regex pattern '%s': %w", term, err)
		}
	}

	entry := &domainBlacklist.Entry{
		ID:        uuid.New(),
		Term:      term,
		Language:  language,
		Category:  category,
		Severity:  severity,
		IsRegex:   isRegex,
		IsActive:  true,
		AddedBy:   addedBy,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := m.repo.Upsert(ctx, entry); err != nil {
		return nil, err
	}

	m.invalidateCaches(ctx)
	m.logger.WithFields(logrus.Fields{
		"term":     term,
		"language": language,
		"severity": severity,
	}).Info("blacklist term added")

	return entry, nil
}

// RemoveTerm deactivates an entry. Returns false when the ID is not an
// active entry.
func (m *Manager) RemoveTerm(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := m.repo.Deactivate(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		m.invalidateCaches(ctx)
		m.logger.WithField("entry_id", id).Info("blacklist term deactivated")
	}
	return ok, nil
}

// ForceRefresh drops every projection so the next check reloads from
// the store.
func (m *Manager) ForceRefresh(ctx context.Context) {
	m.invalidateCaches(ctx)
}

func (m *Manager) Stats(ctx context.Context) (*domainBlacklist.Stats, error) {
	return m.repo.Stats(ctx)
}

func (m *Manager) invalidateCaches(ctx context.Context) {
	m.matcher.Invalidate()
	if err := m.redis.DeletePattern(ctx, "sentinel:blacklist:*"); err != nil {
		m.logger.WithError(err).Warn("failed to clear distributed blacklist cache")
	}
	if err := cache.PublishBlacklistInvalidation(ctx, m.redis, "admin"); err != nil {
		m.logger.WithError(err).Warn("failed to broadcast blacklist invalidation")
	}
}
