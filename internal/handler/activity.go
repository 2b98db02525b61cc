package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type ActivityHandler struct {
	logs service.LogStore
}

func NewActivityHandler(logs service.LogStore) *ActivityHandler {
	return &ActivityHandler{logs: logs}
}

// List handles GET /api/activity
func (h *ActivityHandler) List(c fiber.Ctx) error {
	limit := defaultActivityLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "limit must be a positive integer")
		}
		limit = min(n, maxActivityLimit)
	}

	logs, err := h.logs.GetRecentActivityLogs(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load activity")
	}
	return c.JSON(logs)
}
