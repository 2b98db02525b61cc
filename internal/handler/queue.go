package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
)

type QueueHandler struct {
	pipeline *service.Pipeline
	queue    service.QueueStore
}

func NewQueueHandler(pipeline *service.Pipeline, queue service.QueueStore) *QueueHandler {
	return &QueueHandler{pipeline: pipeline, queue: queue}
}

// Retry handles POST /api/queue/:id/retry
func (h *QueueHandler) Retry(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	item, err := h.pipeline.RetryQueueItem(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Queue item not found")
		case errors.Is(err, service.ErrRetryExhausted):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "RETRY_EXHAUSTED", "Queue item has reached its retry limit")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to retry queue item")
		}
	}
	return c.JSON(item)
}
