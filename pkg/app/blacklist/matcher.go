package blacklist

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veloxchat/sentinel/pkg/domain"
	domainBlacklist "github.com/veloxchat/sentinel/pkg/domain/blacklist"
	"github.com/veloxchat/sentinel/pkg/infra/cache"
	"github.com/veloxchat/sentinel/pkg/infra/metrics"
)

const cacheKeyPattern = "sentinel:blacklist:%s"

// Result is the outcome of one blacklist check. A failed check degrades
// to the zero Result rather than surfacing an error.
type Result struct {
	Matched     bool
	Terms       []string
	MaxSeverity domain.Severity
}

//go:generate mockery --name=Matcher --dir=. --output=./mocks --filename=matcher_mock.go --case=underscore --with-expecter
type Matcher interface {
	Check(ctx context.Context, text, language string) Result
	// Invalidate drops the local projections. The next check rebuilds
	// from the dictionary store.
	Invalidate()
}

// cachedTerm is the wire form stored in redis per language.
type cachedTerm struct {
	Term     string          `json:"term"`
	Severity domain.Severity `json:"severity"`
	IsRegex  bool            `json:"is_regex"`
}

// projection is the read-optimized per-language view: word-boundary
// matchers for exact terms plus compiled patterns. It is a cache over
// the dictionary store, never the source of truth.
type projection struct {
	exact      map[string]*regexp.Regexp
	patterns   []*regexp.Regexp
	severities map[string]domain.Severity
}

type matcher struct {
	repo     domainBlacklist.Repository
	redis    *cache.Client
	memory   *cache.TTLMap
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewMatcher(
	repo domainBlacklist.Repository,
	redisClient *cache.Client,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) Matcher {
	return &matcher{
		repo:     repo,
		redis:    redisClient,
		memory:   cache.NewTTLMap(cacheTTL),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (m *matcher) Check(ctx context.Context, text, language string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{MaxSeverity: domain.SeverityNone}
	}

	proj, err := m.projectionFor(ctx, language)
	if err != nil {
		// Degrade to no match instead of blocking moderation. The
		// counter keeps the silent failure visible.
		m.logger.WithError(err).WithField("language", language).
			Error("blacklist check degraded to no-match")
		metrics.BlacklistDegradations.WithLabelValues("store_unavailable").Inc()
		return Result{MaxSeverity: domain.SeverityNone}
	}

	detected := make(map[string]struct{})
	textLower := strings.ToLower(text)

	for term, boundary := range proj.exact {
		if boundary.MatchString(textLower) {
			detected[term] = struct{}{}
		}
	}

	for _, pattern := range proj.patterns {
		for _, match := range pattern.FindAllString(text, -1) {
			detected[match] = struct{}{}
		}
	}

	if len(detected) == 0 {
		return Result{MaxSeverity: domain.SeverityNone}
	}

	terms := make([]string, 0, len(detected))
	for term := range detected {
		terms = append(terms, term)
	}

	return Result{
		Matched:     true,
		Terms:       terms,
		MaxSeverity: m.maxSeverity(ctx, terms, language, proj),
	}
}

// maxSeverity resolves each detected term's configured severity and
// returns the highest. Unresolvable terms (regex captures mostly)
// default to medium.
func (m *matcher) maxSeverity(ctx context.Context, terms []string, language string, proj *projection) domain.Severity {
	max := domain.SeverityNone
	for _, term := range terms {
		max = max.Max(m.severityOf(ctx, term, language, proj))
	}
	if max == domain.SeverityNone {
		return domain.SeverityMedium
	}
	return max
}

func (m *matcher) severityOf(ctx context.Context, term, language string, proj *projection) domain.Severity {
	if sev, ok := proj.severities[strings.ToLower(term)]; ok {
		return sev
	}
	entry, err := m.repo.GetByTermAndLanguage(ctx, term, language)
	if err != nil {
		m.logger.WithError(err).WithField("term", term).Debug("severity lookup failed")
		return domain.SeverityMedium
	}
	if entry == nil || !entry.Severity.IsValid() {
		return domain.SeverityMedium
	}
	return entry.Severity
}

func (m *matcher) Invalidate() {
	m.memory.Clear()
}

// projectionFor answers from the in-memory projection, falling back to
// redis, finally rebuilding every language from the dictionary store in
// one pass. Concurrent rebuilds are harmless: each writes the same
// derived data, last writer wins.
func (m *matcher) projectionFor(ctx context.Context, language string) (*projection, error) {
	if cached, ok := m.memory.Get(language); ok {
		proj, ok := cached.(*projection)
		if ok {
			return proj, nil
		}
	}

	if proj, err := m.projectionFromRedis(ctx, language); err == nil && proj != nil {
		m.memory.Set(language, proj)
		return proj, nil
	}

	byLanguage, err := m.rebuildAll(ctx)
	if err != nil {
		return nil, err
	}

	proj, ok := byLanguage[language]
	if !ok {
		// No dictionary for this language; cache the empty view so the
		// miss does not re-trigger a rebuild per message.
		proj = m.compile(language, nil)
	}
	m.memory.Set(language, proj)
	return proj, nil
}

func (m *matcher) projectionFromRedis(ctx context.Context, language string) (*projection, error) {
	raw, err := m.redis.Get(ctx, fmt.Sprintf(cacheKeyPattern, language))
	if err != nil {
		return nil, err
	}
	var terms []cachedTerm
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil, fmt.Errorf("malformed cached blacklist for %s: %w", language, err)
	}
	return m.compile(language, terms), nil
}

// rebuildAll loads every active entry once and refreshes the redis and
// in-memory projections for all languages together, so a burst of
// misses across languages costs one store scan instead of one each.
func (m *matcher) rebuildAll(ctx context.Context) (map[string]*projection, error) {
	entries, err := m.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load blacklist entries: %w", err)
	}

	grouped := make(map[string][]cachedTerm)
	for _, entry := range entries {
		grouped[entry.Language] = append(grouped[entry.Language], cachedTerm{
			Term:     entry.Term,
			Severity: entry.Severity,
			IsRegex:  entry.IsRegex,
		})
	}

	projections := make(map[string]*projection, len(grouped))
	for language, terms := range grouped {
		if payload, err := json.Marshal(terms); err == nil {
			if err := m.redis.Set(ctx, fmt.Sprintf(cacheKeyPattern, language), string(payload), m.cacheTTL); err != nil {
				m.logger.WithError(err).WithField("language", language).
					Warn("failed to refresh distributed blacklist cache")
			}
		}
		proj := m.compile(language, terms)
		projections[language] = proj
		m.memory.Set(language, proj)
	}

	m.logger.WithField("entries", len(entries)).Debug("blacklist cache rebuilt")
	return projections, nil
}

// compile turns raw terms into matchable form. Exact terms become
// case-insensitive word-boundary regexes over the lowercased text so
// "class" cannot fire inside "classic". Malformed persisted patterns
// are skipped, not fatal.
func (m *matcher) compile(language string, terms []cachedTerm) *projection {
	proj := &projection{
		exact:      make(map[string]*regexp.Regexp),
		severities: make(map[string]domain.Severity),
	}
	for _, t := range terms {
		if t.IsRegex {
			pattern, err := regexp.Compile("(?i)" + t.Term)
			if err != nil {
				m.logger.WithError(err).WithFields(logrus.Fields{
					"pattern":  t.Term,
					"language": language,
				}).Error("invalid blacklist regex pattern, skipping")
				metrics.BlacklistDegradations.WithLabelValues("malformed_pattern").Inc()
				continue
			}
			proj.patterns = append(proj.patterns, pattern)
			proj.severities[strings.ToLower(t.Term)] = t.Severity
			continue
		}

		lower := strings.ToLower(t.Term)
		boundary, err := regexp.Compile(`\b` + regexp.QuoteMeta(lower) + `\b`)
		if err != nil {
			m.logger.WithError(err).WithField("term", t.Term).Error("failed to compile exact term, skipping")
			metrics.BlacklistDegradations.WithLabelValues("malformed_pattern").Inc()
			continue
		}
		proj.exact[lower] = boundary
		proj.severities[lower] = t.Severity
	}
	return proj
}
