package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/moderation"
)

type listUserViolationsHandler struct {
	logger  *logrus.Logger
	service *moderation.Service
}

func NewListUserViolationsHandler(logger *logrus.Logger, service *moderation.Service) Handler {
	return &listUserViolationsHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary List a user's violations in a channel
// @Description Returns the newest violations first
// @Tags Users
// @Produce json
// @Param user_id path string true "User ID"
// @Param channel_id query string true "Channel ID"
// @Param limit query int false "Maximum rows to return"
// @Success 200 {object} map[string]interface{} "Violation history"
// @Failure 400 {object} map[string]interface{} "Missing identifiers"
// @Router /api/v1/moderation/users/{user_id}/violations [get]
func (s *listUserViolationsHandler) Handle(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	channelID := c.Query("channel_id")
	if userID == "" || channelID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id and channel_id are required"})
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = parsed
	}

	violations, err := s.service.GetUserViolations(c.Context(), userID, channelID, limit)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":    userID,
			"channel_id": channelID,
		}).Error("failed to list violations")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list violations"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id":    userID,
		"channel_id": channelID,
		"violations": violations,
		"count":      len(violations),
	})
}
