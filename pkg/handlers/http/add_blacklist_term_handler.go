package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
	"github.com/veloxchat/sentinel/pkg/domain"
	"github.com/veloxchat/sentinel/pkg/handlers/http/request"
)

type addBlacklistTermHandler struct {
	logger  *logrus.Logger
	manager *blacklist.Manager
}

func NewAddBlacklistTermHandler(logger *logrus.Logger, manager *blacklist.Manager) Handler {
	return &addBlacklistTermHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Add a blacklist term
// @Description Upserts a dictionary entry and invalidates the projection caches
// @Tags Blacklist
// @Accept json
// @Produce json
// @Param term body request.AddBlacklistTermRequest true "Term to add"
// @Success 201 {object} blacklist.Entry "Entry created"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/moderation/blacklist [post]
func (s *addBlacklistTermHandler) Handle(c *fiber.Ctx) error {
	var req request.AddBlacklistTermRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := s.manager.AddTerm(
		c.Context(),
		req.Term,
		req.Language,
		req.Category,
		domain.Severity(req.Severity),
		req.IsRegex,
		req.AddedBy,
	)
	if err != nil {
		s.logger.WithError(err).WithField("term", req.Term).Error("failed to add blacklist term")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}
