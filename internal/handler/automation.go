package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
)

type AutomationHandler struct {
	automation *service.Automation
	settings   service.SettingsStore
}

func NewAutomationHandler(automation *service.Automation, settings service.SettingsStore) *AutomationHandler {
	return &AutomationHandler{automation: automation, settings: settings}
}

// Start handles POST /api/automation/start
func (h *AutomationHandler) Start(c fiber.Ctx) error {
	if err := h.automation.Start(c.Context()); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyRunning):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_RUNNING", "Automation is already running")
		case errors.Is(err, service.ErrAutomationDisabled):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "DISABLED", "Enable automation in settings first")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start automation")
		}
	}
	return c.JSON(fiber.Map{"running": true})
}

// Stop handles POST /api/automation/stop
func (h *AutomationHandler) Stop(c fiber.Ctx) error {
	if err := h.automation.Stop(c.Context()); err != nil {
		if errors.Is(err, service.ErrNotRunning) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "NOT_RUNNING", "Automation is not running")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to stop automation")
	}
	return c.JSON(fiber.Map{"running": false})
}

// Pause handles POST /api/automation/pause
func (h *AutomationHandler) Pause(c fiber.Ctx) error {
	if err := h.automation.Pause(c.Context()); err != nil {
		if errors.Is(err, service.ErrNotRunning) {
			return middleware.ErrorResponse(c, fiber.StatusConflict, "NOT_RUNNING", "Automation is not running")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to pause automation")
	}
	return c.JSON(fiber.Map{"running": false, "paused": true})
}

// Status handles GET /api/automation/status
func (h *AutomationHandler) Status(c fiber.Ctx) error {
	settings, err := h.settings.GetSettings(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load settings")
	}
	return c.JSON(fiber.Map{
		"running":  h.automation.IsRunning(),
		"settings": settings,
	})
}

// GetSettings handles GET /api/automation/settings
func (h *AutomationHandler) GetSettings(c fiber.Ctx) error {
	settings, err := h.settings.GetSettings(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load settings")
	}
	return c.JSON(settings)
}

// UpdateSettings handles PUT /api/automation/settings
func (h *AutomationHandler) UpdateSettings(c fiber.Ctx) error {
	current, err := h.settings.GetSettings(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load settings")
	}

	// Partial update on top of the current row.
	updated := *current
	if err := c.Bind().Body(&updated); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}
	updated.ID = current.ID

	if errMsg := middleware.ValidateSettings(&updated); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.settings.UpdateSettings(c.Context(), &updated); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update settings")
	}
	return c.JSON(updated)
}
