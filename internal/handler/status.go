package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/gemini"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/model"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

// StatusHandler reports overall system health for the dashboard: account
// connection, quota consumption and automation state.
type StatusHandler struct {
	store      service.Store
	client     *youtube.Client
	generator  *gemini.Generator
	automation *service.Automation
}

func NewStatusHandler(store service.Store, client *youtube.Client, generator *gemini.Generator, automation *service.Automation) *StatusHandler {
	return &StatusHandler{
		store:      store,
		client:     client,
		generator:  generator,
		automation: automation,
	}
}

// Get handles GET /api/system/status
func (h *StatusHandler) Get(c fiber.Ctx) error {
	account, err := h.store.GetAccount(c.Context(), defaultAccountID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load account")
	}

	quota, err := h.store.GetTodayQuota(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load quota")
	}
	quotaPct := quota.YouTubeQuotaUsed * 100 / model.DailyYouTubeQuota

	geminiCtx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()
	geminiOK := h.generator.TestConnection(geminiCtx)

	return c.JSON(fiber.Map{
		"youtube": fiber.Map{
			"connected":    account.Connected(),
			"quotaUsed":    quota.YouTubeQuotaUsed,
			"quotaPercent": min(quotaPct, 100),
			"keyRotations": h.client.KeyRotations(),
		},
		"gemini": fiber.Map{
			"reachable": geminiOK,
			"quotaUsed": quota.GeminiQuotaUsed,
		},
		"automation": fiber.Map{
			"running": h.automation.IsRunning(),
		},
	})
}
