package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/moderation"
	"github.com/veloxchat/sentinel/pkg/handlers/http/request"
)

type batchAnalyzeHandler struct {
	logger  *logrus.Logger
	service *moderation.Service
}

func NewBatchAnalyzeHandler(logger *logrus.Logger, service *moderation.Service) Handler {
	return &batchAnalyzeHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Analyze a batch of texts
// @Description Scores each text independently; no strikes or violations are recorded
// @Tags Moderation
// @Accept json
// @Produce json
// @Param texts body request.BatchAnalyzeRequest true "Texts to analyze"
// @Success 200 {object} map[string]interface{} "Per-text analysis results"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/moderation/analyze/batch [post]
func (s *batchAnalyzeHandler) Handle(c *fiber.Ctx) error {
	var req request.BatchAnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	results := s.service.BatchAnalyze(c.Context(), req.Texts)

	out := make([]fiber.Map, 0, len(results))
	for i, combined := range results {
		out = append(out, fiber.Map{
			"index":          i,
			"is_toxic":       combined.IsToxic,
			"toxicity_score": combined.ToxicityScore,
			"severity":       combined.Severity,
			"detected_words": combined.DetectedWords,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"results": out, "count": len(out)})
}
