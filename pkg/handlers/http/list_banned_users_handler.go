package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/moderation"
)

type listBannedUsersHandler struct {
	logger  *logrus.Logger
	service *moderation.Service
}

func NewListBannedUsersHandler(logger *logrus.Logger, service *moderation.Service) Handler {
	return &listBannedUsersHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary List active bans
// @Description Returns all active bans, optionally filtered by channel
// @Tags Users
// @Produce json
// @Param channel_id query string false "Channel ID filter"
// @Success 200 {object} map[string]interface{} "Active bans"
// @Router /api/v1/moderation/bans [get]
func (s *listBannedUsersHandler) Handle(c *fiber.Ctx) error {
	channelID := c.Query("channel_id")

	bans, err := s.service.GetBannedUsers(c.Context(), channelID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list active bans")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list active bans"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"bans":  bans,
		"count": len(bans),
	})
}
