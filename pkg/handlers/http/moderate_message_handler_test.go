package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
	blacklistMocks "github.com/veloxchat/sentinel/pkg/app/blacklist/mocks"
	"github.com/veloxchat/sentinel/pkg/app/language"
	"github.com/veloxchat/sentinel/pkg/app/moderation"
	"github.com/veloxchat/sentinel/pkg/app/scoring"
	appStrike "github.com/veloxchat/sentinel/pkg/app/strike"
	strikeMocks "github.com/veloxchat/sentinel/pkg/app/strike/mocks"
	"github.com/veloxchat/sentinel/pkg/domain"
	violationMocks "github.com/veloxchat/sentinel/pkg/domain/violation/mocks"
	handlers "github.com/veloxchat/sentinel/pkg/handlers/http"
	"github.com/veloxchat/sentinel/pkg/infra/classifier"
	classifierMocks "github.com/veloxchat/sentinel/pkg/infra/classifier/mocks"
	eventMocks "github.com/veloxchat/sentinel/pkg/infra/events/mocks"
)

type handlerMocks struct {
	scorer     *classifierMocks.Scorer
	matcher    *blacklistMocks.Matcher
	strikes    *strikeMocks.Manager
	violations *violationMocks.Repository
	publisher  *eventMocks.Publisher
}

func newHandlerService() (*moderation.Service, *handlerMocks) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	m := &handlerMocks{
		scorer:     new(classifierMocks.Scorer),
		matcher:    new(blacklistMocks.Matcher),
		strikes:    new(strikeMocks.Manager),
		violations: new(violationMocks.Repository),
		publisher:  new(eventMocks.Publisher),
	}
	detector := language.NewDetector([]string{"es", "en"}, "es", logger)
	combiner := scoring.NewCombiner(scoring.Thresholds{Low: 0.5, Medium: 0.7, High: 0.9})

	svc := moderation.NewService(
		detector, m.scorer, m.matcher, combiner,
		m.strikes, m.violations, nil, m.publisher, logger,
	)
	return svc, m
}

func newModerateApp(svc *moderation.Service) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	app := fiber.New()
	app.Post("/moderate", handlers.NewModerateMessageHandler(logger, svc).Handle)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestModerateMessageHandler_Approved(t *testing.T) {
	svc, m := newHandlerService()
	app := newModerateApp(svc)

	m.strikes.On("IsBanned", mock.Anything, "user-1", "channel-1").Return(false, nil, nil)
	m.scorer.On("Score", mock.Anything, mock.Anything).Return(classifier.Scores{"toxicity": 0.05}, nil)
	m.matcher.On("Check", mock.Anything, mock.Anything, mock.Anything).
		Return(blacklist.Result{MaxSeverity: domain.SeverityNone})

	resp := postJSON(t, app, "/moderate", fiber.Map{
		"message_id": "msg-1",
		"user_id":    "user-1",
		"channel_id": "channel-1",
		"content":    "hello everyone",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var verdict moderation.Verdict
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verdict))
	assert.True(t, verdict.IsApproved)
	assert.Equal(t, domain.ActionApproved, verdict.Action)
}

func TestModerateMessageHandler_Blocked(t *testing.T) {
	svc, m := newHandlerService()
	app := newModerateApp(svc)

	m.strikes.On("IsBanned", mock.Anything, "user-1", "channel-1").Return(false, nil, nil)
	m.scorer.On("Score", mock.Anything, mock.Anything).Return(classifier.Scores{"toxicity": 0.8}, nil)
	m.matcher.On("Check", mock.Anything, mock.Anything, mock.Anything).
		Return(blacklist.Result{Matched: true, Terms: []string{"badword"}, MaxSeverity: domain.SeverityMedium})
	m.strikes.On("CurrentStrikeCount", mock.Anything, "user-1", "channel-1").Return(0, nil)
	m.violations.On("Insert", mock.Anything, mock.Anything).Return(nil)
	m.strikes.On("ApplyStrike", mock.Anything, "user-1", "channel-1", domain.SeverityMedium, mock.Anything).
		Return(&appStrike.Outcome{Action: domain.ActionWarning, StrikeCount: 1}, nil)
	m.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resp := postJSON(t, app, "/moderate", fiber.Map{
		"message_id": "msg-1",
		"user_id":    "user-1",
		"channel_id": "channel-1",
		"content":    "you badword",
	})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var verdict moderation.Verdict
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verdict))
	assert.False(t, verdict.IsApproved)
	assert.Equal(t, domain.ActionWarning, verdict.Action)
	assert.Equal(t, 1, verdict.StrikeCount)
}

func TestModerateMessageHandler_MissingFields(t *testing.T) {
	svc, _ := newHandlerService()
	app := newModerateApp(svc)

	resp := postJSON(t, app, "/moderate", fiber.Map{
		"message_id": "msg-1",
		"content":    "hello",
	})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestModerateMessageHandler_InvalidBody(t *testing.T) {
	svc, _ := newHandlerService()
	app := newModerateApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/moderate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
