package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/moderation"
	"github.com/veloxchat/sentinel/pkg/handlers/http/request"
)

type unbanUserHandler struct {
	logger  *logrus.Logger
	service *moderation.Service
}

func NewUnbanUserHandler(logger *logrus.Logger, service *moderation.Service) Handler {
	return &unbanUserHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Lift an active ban
// @Description Deactivates the active ban for the pair; strikes can optionally be reset
// @Tags Users
// @Accept json
// @Produce json
// @Param unban body request.UnbanUserRequest true "Unban request body"
// @Success 200 {object} map[string]interface{} "Ban lifted"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "No active ban"
// @Router /api/v1/moderation/bans/unban [post]
func (s *unbanUserHandler) Handle(c *fiber.Ctx) error {
	var req request.UnbanUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lifted, err := s.service.UnbanUser(c.Context(), req.UserID, req.ChannelID, req.UnbannedBy, req.Reason, req.ResetStrikes)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":    req.UserID,
			"channel_id": req.ChannelID,
		}).Error("failed to unban user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to unban user"})
	}
	if !lifted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no active ban for this user and channel"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id":    req.UserID,
		"channel_id": req.ChannelID,
		"unbanned":   true,
	})
}
