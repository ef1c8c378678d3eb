package blacklist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
	"github.com/veloxchat/sentinel/pkg/domain"
	domainBlacklist "github.com/veloxchat/sentinel/pkg/domain/blacklist"
	blacklistMocks "github.com/veloxchat/sentinel/pkg/domain/blacklist/mocks"
	"github.com/veloxchat/sentinel/pkg/infra/cache"
)

func newTestMatcher(t *testing.T, entries []*domainBlacklist.Entry) (blacklist.Matcher, *blacklistMocks.Repository) {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	rdb, rmock := redismock.NewClientMock()
	rmock.MatchExpectationsInOrder(false)
	rmock.Regexp().ExpectGet("sentinel:blacklist:.*").RedisNil()
	rmock.Regexp().ExpectSet("sentinel:blacklist:.*", ".*", 30*time.Minute).SetVal("OK")

	repo := new(blacklistMocks.Repository)
	repo.On("ListActive", mock.Anything).Return(entries, nil)
	repo.On("GetByTermAndLanguage", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	client := cache.NewClientWithRedis(rdb)
	return blacklist.NewMatcher(repo, client, 30*time.Minute, logger), repo
}

func exactEntry(term, language string, severity domain.Severity) *domainBlacklist.Entry {
	return &domainBlacklist.Entry{Term: term, Language: language, Severity: severity, IsActive: true}
}

func TestCheck_ExactTermRespectsWordBoundaries(t *testing.T) {
	matcher, _ := newTestMatcher(t, []*domainBlacklist.Entry{
		exactEntry("class", "en", domain.SeverityMedium),
	})
	ctx := context.Background()

	// substring inside a longer word must not fire
	result := matcher.Check(ctx, "classic movies are great", "en")
	assert.False(t, result.Matched)

	result = matcher.Check(ctx, "I will skip CLASS today", "en")
	assert.True(t, result.Matched)
	assert.Equal(t, []string{"class"}, result.Terms)
	assert.Equal(t, domain.SeverityMedium, result.MaxSeverity)
}

func TestCheck_RegexPattern(t *testing.T) {
	matcher, _ := newTestMatcher(t, []*domainBlacklist.Entry{
		{Term: `b[a4]dw[o0]rd`, Language: "en", Severity: domain.SeverityHigh, IsRegex: true, IsActive: true},
	})

	result := matcher.Check(context.Background(), "you are a b4dw0rd", "en")

	assert.True(t, result.Matched)
	assert.Equal(t, []string{"b4dw0rd"}, result.Terms)
	// the capture is not a dictionary term, so severity falls back to
	// the medium default
	assert.Equal(t, domain.SeverityMedium, result.MaxSeverity)
}

func TestCheck_HighestSeverityWins(t *testing.T) {
	matcher, _ := newTestMatcher(t, []*domainBlacklist.Entry{
		exactEntry("mild", "en", domain.SeverityLow),
		exactEntry("harsh", "en", domain.SeverityHigh),
	})

	result := matcher.Check(context.Background(), "that was mild but also harsh", "en")

	assert.True(t, result.Matched)
	assert.Len(t, result.Terms, 2)
	assert.Equal(t, domain.SeverityHigh, result.MaxSeverity)
}

func TestCheck_UnknownLanguageNeverMatches(t *testing.T) {
	matcher, repo := newTestMatcher(t, []*domainBlacklist.Entry{
		exactEntry("badword", "en", domain.SeverityMedium),
	})
	ctx := context.Background()

	result := matcher.Check(ctx, "badword", "fr")
	assert.False(t, result.Matched)

	// the empty projection is cached; a second miss must not rescan
	_ = matcher.Check(ctx, "badword again", "fr")
	repo.AssertNumberOfCalls(t, "ListActive", 1)
}

func TestCheck_StoreFailureDegradesToNoMatch(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	rdb, rmock := redismock.NewClientMock()
	rmock.Regexp().ExpectGet("sentinel:blacklist:.*").RedisNil()

	repo := new(blacklistMocks.Repository)
	repo.On("ListActive", mock.Anything).Return(nil, errors.New("store unavailable"))

	matcher := blacklist.NewMatcher(repo, cache.NewClientWithRedis(rdb), 30*time.Minute, logger)

	result := matcher.Check(context.Background(), "badword", "en")

	assert.False(t, result.Matched)
	assert.Equal(t, domain.SeverityNone, result.MaxSeverity)
}

func TestCheck_EmptyTextIsClean(t *testing.T) {
	matcher, repo := newTestMatcher(t, nil)

	result := matcher.Check(context.Background(), "   ", "en")

	assert.False(t, result.Matched)
	repo.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestCheck_MalformedRegexIsSkipped(t *testing.T) {
	matcher, _ := newTestMatcher(t, []*domainBlacklist.Entry{
		{Term: `([unclosed`, Language: "en", Severity: domain.SeverityHigh, IsRegex: true, IsActive: true},
		exactEntry("badword", "en", domain.SeverityLow),
	})

	result := matcher.Check(context.Background(), "a badword here", "en")

	assert.True(t, result.Matched)
	assert.Equal(t, []string{"badword"}, result.Terms)
}

func TestInvalidate_ForcesRebuild(t *testing.T) {
	matcher, repo := newTestMatcher(t, []*domainBlacklist.Entry{
		exactEntry("badword", "en", domain.SeverityMedium),
	})
	ctx := context.Background()

	require.True(t, matcher.Check(ctx, "badword", "en").Matched)
	repo.AssertNumberOfCalls(t, "ListActive", 1)

	matcher.Invalidate()

	// redis also misses after invalidation in this setup, so the store
	// is scanned again
	require.True(t, matcher.Check(ctx, "badword", "en").Matched)
	repo.AssertNumberOfCalls(t, "ListActive", 2)
}
