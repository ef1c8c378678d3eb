package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
	"github.com/veloxchat/sentinel/pkg/app/language"
	"github.com/veloxchat/sentinel/pkg/app/scoring"
	"github.com/veloxchat/sentinel/pkg/app/strike"
	"github.com/veloxchat/sentinel/pkg/domain"
	domainBan "github.com/veloxchat/sentinel/pkg/domain/ban"
	"github.com/veloxchat/sentinel/pkg/domain/violation"
	"github.com/veloxchat/sentinel/pkg/infra/classifier"
	"github.com/veloxchat/sentinel/pkg/infra/events"
	"github.com/veloxchat/sentinel/pkg/infra/metrics"
)

var (
	ErrEmptyContent   = errors.New("message content must not be empty")
	ErrMissingMessage = errors.New("message_id, user_id and channel_id are required")
)

// Verdict is the engine's decision for one moderated message.
type Verdict struct {
	IsApproved    bool            `json:"is_approved"`
	Action        domain.Action   `json:"action"`
	Severity      domain.Severity `json:"severity"`
	ToxicityScore float64         `json:"toxicity_score"`
	StrikeCount   int             `json:"strike_count"`
	Message       string          `json:"message"`
	DetectedWords []string        `json:"detected_words"`
	Language      string          `json:"language"`
	BanInfo       *strike.BanInfo `json:"ban_info,omitempty"`
}

// Service sequences the moderation pipeline: ban gate, language
// detection, the two analysis signals, score combination, strike
// escalation and event emission.
type Service struct {
	detector   *language.Detector
	scorer     classifier.Scorer
	matcher    blacklist.Matcher
	combiner   *scoring.Combiner
	strikes    strike.Manager
	violations violation.Repository
	bans       domainBan.Repository
	publisher  events.Publisher
	logger     *logrus.Logger
}

func NewService(
	detector *language.Detector,
	scorer classifier.Scorer,
	matcher blacklist.Matcher,
	combiner *scoring.Combiner,
	strikes strike.Manager,
	violations violation.Repository,
	bans domainBan.Repository,
	publisher events.Publisher,
	logger *logrus.Logger,
) *Service {
	return &Service{
		detector:   detector,
		scorer:     scorer,
		matcher:    matcher,
		combiner:   combiner,
		strikes:    strikes,
		violations: violations,
		bans:       bans,
		publisher:  publisher,
		logger:     logger,
	}
}

// Moderate turns a raw message into a verdict.
func (s *Service) Moderate(ctx context.Context, messageID, userID, channelID, content string) (*Verdict, error) {
	start := time.Now()

	if messageID == "" || userID == "" || channelID == "" {
		return nil, ErrMissingMessage
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	banned, activeBan, err := s.strikes.IsBanned(ctx, userID, channelID)
	if err != nil {
		return nil, fmt.Errorf("ban check failed: %w", err)
	}
	if banned {
		verdict := s.bannedVerdict(activeBan)
		s.observe(verdict.Action, start)
		return verdict, nil
	}

	lang := s.detector.Detect(content)
	combined := s.analyze(ctx, content, lang)

	if !combined.IsToxic {
		verdict := &Verdict{
			IsApproved:    true,
			Action:        domain.ActionApproved,
			Severity:      domain.SeverityNone,
			ToxicityScore: combined.ToxicityScore,
			Message:       "message approved",
			DetectedWords: []string{},
			Language:      lang,
		}
		s.observe(verdict.Action, start)
		return verdict, nil
	}

	// Once the toxic path starts, the violation write and the strike
	// escalation complete as a unit even if the caller disconnects.
	writeCtx := context.WithoutCancel(ctx)

	strikeCountBefore, err := s.strikes.CurrentStrikeCount(writeCtx, userID, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to read strike count: %w", err)
	}

	record := &violation.Violation{
		ID:                 uuid.New(),
		UserID:             userID,
		ChannelID:          channelID,
		MessageID:          messageID,
		ContentFingerprint: violation.Fingerprint(content),
		DetectedWords:      combined.DetectedWords,
		ToxicityScore:      combined.ToxicityScore,
		Severity:           combined.Severity,
		ActionTaken:        domain.ActionMessageBlocked,
		StrikeCountAtTime:  strikeCountBefore,
		CreatedAt:          time.Now().UTC(),
	}
	if err := s.violations.Insert(writeCtx, record); err != nil {
		return nil, fmt.Errorf("failed to persist violation: %w", err)
	}

	reason := fmt.Sprintf("inappropriate content detected, score: %.2f", combined.ToxicityScore)
	outcome, err := s.strikes.ApplyStrike(writeCtx, userID, channelID, combined.Severity, reason)
	if err != nil {
		return nil, fmt.Errorf("failed to apply strike: %w", err)
	}

	s.publishModerationEvents(writeCtx, messageID, userID, channelID, combined, outcome)

	verdict := &Verdict{
		IsApproved:    false,
		Action:        outcome.Action,
		Severity:      combined.Severity,
		ToxicityScore: combined.ToxicityScore,
		StrikeCount:   outcome.StrikeCount,
		Message:       actionMessage(outcome),
		DetectedWords: combined.DetectedWords,
		Language:      lang,
		BanInfo:       outcome.BanInfo,
	}

	s.logger.WithFields(logrus.Fields{
		"message_id": messageID,
		"action":     verdict.Action,
		"strikes":    verdict.StrikeCount,
	}).Info("moderation complete")

	s.observe(verdict.Action, start)
	return verdict, nil
}

// AnalyzeOnly runs the analysis pipeline without strike or violation
// side effects, for preview and testing use.
func (s *Service) AnalyzeOnly(ctx context.Context, text, lang string) (scoring.CombinedScore, string, error) {
	if strings.TrimSpace(text) == "" {
		return scoring.CombinedScore{Severity: domain.SeverityNone}, "", ErrEmptyContent
	}
	if lang == "" {
		lang = s.detector.Detect(text)
	}
	return s.analyze(ctx, text, lang), lang, nil
}

// BatchAnalyze applies AnalyzeOnly over a list of texts.
func (s *Service) BatchAnalyze(ctx context.Context, texts []string) []scoring.CombinedScore {
	results := make([]scoring.CombinedScore, 0, len(texts))
	for _, text := range texts {
		combined, _, err := s.AnalyzeOnly(ctx, text, "")
		if err != nil {
			combined = scoring.CombinedScore{Severity: domain.SeverityNone}
		}
		results = append(results, combined)
	}
	return results
}

// analyze runs the classifier and the blacklist check concurrently and
// merges both signals. Either signal degrades to "no signal" on
// failure instead of failing the request.
func (s *Service) analyze(ctx context.Context, text, lang string) scoring.CombinedScore {
	var scores classifier.Scores
	var blacklistResult blacklist.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.scorer.Score(gctx, text)
		if err != nil {
			s.logger.WithError(err).Warn("classifier degraded to empty scores")
			metrics.ClassifierFailures.Inc()
			return nil
		}
		scores = result
		return nil
	})
	g.Go(func() error {
		blacklistResult = s.matcher.Check(gctx, text, lang)
		return nil
	})
	_ = g.Wait()

	return s.combiner.Combine(scores, blacklistResult)
}

func (s *Service) publishModerationEvents(ctx context.Context, messageID, userID, channelID string, combined scoring.CombinedScore, outcome *strike.Outcome) {
	s.publish(ctx, events.TypeMessageBlocked, events.MessageBlockedPayload{
		UserID:        userID,
		ChannelID:     channelID,
		MessageID:     messageID,
		Reason:        fmt.Sprintf("inappropriate content detected (%s)", combined.Severity),
		ToxicityScore: combined.ToxicityScore,
		DetectedWords: combined.DetectedWords,
	})

	switch outcome.Action {
	case domain.ActionWarning:
		s.publish(ctx, events.TypeWarning, events.WarningPayload{
			UserID:        userID,
			ChannelID:     channelID,
			MessageID:     messageID,
			StrikeCount:   outcome.StrikeCount,
			Severity:      combined.Severity,
			ToxicityScore: combined.ToxicityScore,
		})
	case domain.ActionTempBan, domain.ActionPermBan:
		payload := events.UserBannedPayload{
			UserID:      userID,
			ChannelID:   channelID,
			StrikeCount: outcome.StrikeCount,
		}
		if outcome.BanInfo != nil {
			payload.BanType = outcome.BanInfo.Type
			payload.BannedUntil = outcome.BanInfo.ExpiresAt
			payload.Reason = outcome.BanInfo.Reason
		}
		s.publish(ctx, events.TypeUserBanned, payload)
	}
}

// publish is fire-and-forget: a dead bus never fails a verdict that is
// already committed to storage.
func (s *Service) publish(ctx context.Context, eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, payload); err != nil {
		s.logger.WithError(err).WithField("event_type", eventType).Error("failed to publish moderation event")
		metrics.EventPublishFailures.WithLabelValues(eventType).Inc()
	}
}

// bannedVerdict rejects a message from an already-banned user without
// recording a new violation or strike.
func (s *Service) bannedVerdict(activeBan *domainBan.Ban) *Verdict {
	verdict := &Verdict{
		Action:        domain.ActionUserBanned,
		Severity:      domain.SeverityNone,
		Message:       "user is banned from this channel",
		DetectedWords: []string{},
	}
	if activeBan != nil {
		verdict.BanInfo = &strike.BanInfo{
			Type:      activeBan.BanType,
			ExpiresAt: activeBan.BannedUntil,
			Reason:    activeBan.Reason,
		}
		if activeBan.BanType == domain.BanTypePermanent {
			verdict.Message = "user is permanently banned from this channel"
		}
	}
	return verdict
}

func (s *Service) observe(action domain.Action, start time.Time) {
	metrics.VerdictTotal.WithLabelValues(string(action)).Inc()
	metrics.ModerationLatency.WithLabelValues(string(action)).
		Observe(float64(time.Since(start).Milliseconds()))
}

func actionMessage(outcome *strike.Outcome) string {
	switch outcome.Action {
	case domain.ActionPermBan:
		return fmt.Sprintf("user permanently banned after %d strikes", outcome.StrikeCount)
	case domain.ActionTempBan:
		return fmt.Sprintf("user temporarily banned after %d strikes", outcome.StrikeCount)
	default:
		return fmt.Sprintf("warning issued, strike %d", outcome.StrikeCount)
	}
}
