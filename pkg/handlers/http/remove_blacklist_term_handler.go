package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/app/blacklist"
)

type removeBlacklistTermHandler struct {
	logger  *logrus.Logger
	manager *blacklist.Manager
}

func NewRemoveBlacklistTermHandler(logger *logrus.Logger, manager *blacklist.Manager) Handler {
	return &removeBlacklistTermHandler{
		logger:  logger,
		manager: manager,
	}
}

// Handle @Summary Remove a blacklist term
// @Description Deactivates a dictionary entry by ID
// @Tags Blacklist
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} map[string]interface{} "Entry deactivated"
// @Failure 400 {object} map[string]interface{} "Invalid entry_id"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Router /api/v1/moderation/blacklist/{entry_id} [delete]
func (s *removeBlacklistTermHandler) Handle(c *fiber.Ctx) error {
	entryID, err := uuid.Parse(c.Params("entry_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid entry_id format"})
	}

	removed, err := s.manager.RemoveTerm(c.Context(), entryID)
	if err != nil {
		s.logger.WithError(err).WithField("entry_id", entryID).Error("failed to remove blacklist term")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to remove blacklist term"})
	}
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "blacklist entry not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"entry_id": entryID, "removed": true})
}
