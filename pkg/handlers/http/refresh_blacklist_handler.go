package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
)

type refreshBlacklistHandler struct {
	logger  *logrus.Logger
	manager *blacklist.Manager
}

func NewRefreshBlacklistHandler(logger *logrus.Logger, manager *blacklist.Manager) Handler {
	return &refreshBlacklistHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Force a blacklist cache refresh
// @Description Drops every cached projection so the next check reloads from the store
// @Tags Blacklist
// @Produce json
// @Success 200 {object} map[string]interface{} "Caches invalidated"
// @Router /api/v1/moderation/blacklist/refresh [post]
func (s *refreshBlacklistHandler) Handle(c *fiber.Ctx) error {
	s.manager.ForceRefresh(c.Context())
	s.logger.Info("blacklist cache refresh forced")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"refreshed": true})
}
