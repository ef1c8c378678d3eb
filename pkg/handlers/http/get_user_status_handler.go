package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/moderation"
)

type getUserStatusHandler struct {
	logger  *logrus.Logger
	service *moderation.Service
}

func NewGetUserStatusHandler(logger *logrus.Logger, service *moderation.Service) Handler {
	return &getUserStatusHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Get a user's moderation status in a channel
// @Description Returns strike count and ban state for the (user, channel) pair
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Param channel_id query string true "Channel ID"
// @Success 200 {object} strike.Status "User status"
// @Failure 400 {object} map[string]interface{} "Missing identifiers"
// @Router /api/v1/moderation/users/{user_id}/status [get]
func (s *getUserStatusHandler) Handle(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	channelID := c.Query("channel_id")
	if userID == "" || channelID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and channel_id are required"})
	}

	status, err := s.service.GetUserStatus(c.Context(), userID, channelID)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":    userID,
			"channel_id": channelID,
		}).Error("failed to get user status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get user status"})
	}

	return c.Status(fiber.StatusOK).JSON(status)
}
