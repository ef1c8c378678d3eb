package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/moderation"
	"github.com/veloxchat/sentinel/pkg/handlers/http/request"
)

type analyzeMessageHandler struct {
	logger  *logrus.Logger
	service *moderation.Service
}

func NewAnalyzeMessageHandler(logger *logrus.Logger, service *moderation.Service) Handler {
	return &analyzeMessageHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Analyze text without side effects
// @Description Scores a text through the analysis pipeline; no strikes or violations are recorded
// @Tags Moderation
// @Accept json
// @Produce json
// @Param text body request.AnalyzeRequest true "Text to analyze"
// @Success 200 {object} map[string]interface{} "Analysis result"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/moderation/analyze [post]
func (s *analyzeMessageHandler) Handle(c *fiber.Ctx) error {
	var req request.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	combined, lang, err := s.service.AnalyzeOnly(c.Context(), req.Text, req.Language)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"is_toxic":       combined.IsToxic,
		"toxicity_score": combined.ToxicityScore,
		"severity":       combined.Severity,
		"detected_words": combined.DetectedWords,
		"categories":     combined.Categories,
		"language":       lang,
	})
}
