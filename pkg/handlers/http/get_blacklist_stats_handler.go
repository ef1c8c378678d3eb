package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
)

type getBlacklistStatsHandler struct {
	logger  *logrus.Logger
	manager *blacklist.Manager
}

func NewGetBlacklistStatsHandler(logger *logrus.Logger, manager *blacklist.Manager) Handler {
	return &getBlacklistStatsHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Blacklist statistics
// @Description Returns entry counts grouped by language and severity
// @Tags Blacklist
// @Produce json
// @Success 200 {object} blacklist.Stats "Dictionary statistics"
// @Router /api/v1/moderation/blacklist/stats [get]
func (s *getBlacklistStatsHandler) Handle(c *fiber.Ctx) error {
	stats, err := s.manager.Stats(c.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to compute blacklist stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute blacklist stats"})
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
