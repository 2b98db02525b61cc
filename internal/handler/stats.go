package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
)

type StatsHandler struct {
	stats service.StatsStore
	cache *service.CacheService
}

func NewStatsHandler(stats service.StatsStore, cache *service.CacheService) *StatsHandler {
	return &StatsHandler{stats: stats, cache: cache}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	if cached, ok := h.cache.GetStats(c.Context()); ok {
		return c.JSON(cached)
	}

	stats, err := h.stats.GetStats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	h.cache.SetStats(c.Context(), stats)
	return c.JSON(stats)
}
