package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/moderation"
	"github.com/veloxchat/sentinel/pkg/handlers/http/request"
)

type moderateMessageHandler struct {
	logger  *logrus.Logger
	service *moderation.Service
}

func NewModerateMessageHandler(logger *logrus.Logger, service *moderation.Service) Handler {
	return &moderateMessageHandler{
		logger:  logger,
		service: service,
	}
}

// Handle @Summary Moderate a chat message
// @Description Runs the full moderation pipeline and returns a verdict
// @Tags Moderation
// @Accept json
// @Produce json
// @Param message body request.ModerateMessageRequest true "Message to moderate"
// @Success 200 {object} moderation.Verdict "Moderation verdict"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/moderation/messages [post]
func (s *moderateMessageHandler) Handle(c *fiber.Ctx) error {
	var req request.ModerateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	verdict, err := s.service.Moderate(c.Context(), req.MessageID, req.UserID, req.ChannelID, req.Content)
	if err != nil {
		if errors.Is(err, moderation.ErrEmptyContent) || errors.Is(err, moderation.ErrMissingMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).WithField("message_id", req.MessageID).Error("moderation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to moderate message"})
	}

	return c.Status(fiber.StatusOK).JSON(verdict)
}
