package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

type ChannelHandler struct {
	svc      *service.ChannelService
	pipeline *service.Pipeline
}

func NewChannelHandler(svc *service.ChannelService, pipeline *service.Pipeline) *ChannelHandler {
	return &ChannelHandler{svc: svc, pipeline: pipeline}
}

// List handles GET /api/channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	channels, err := h.svc.ListChannels(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list channels")
	}
	return c.JSON(channels)
}

type createChannelRequest struct {
	ChannelURL string `json:"channelUrl"`
}

// Create handles POST /api/channels
func (h *ChannelHandler) Create(c fiber.Ctx) error {
	var req createChannelRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON")
	}

	handle, errMsg := middleware.ExtractChannelHandle(req.ChannelURL)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	ch, err := h.svc.AddChannel(c.Context(), handle)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChannelExists):
			return middleware.ErrorResponse(c, fiber.StatusConflict, "ALREADY_EXISTS", "Channel is already tracked")
		case errors.Is(err, youtube.ErrChannelNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found on YouTube")
		default:
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to add channel")
		}
	}
	return c.Status(fiber.StatusCreated).JSON(ch)
}

// Delete handles DELETE /api/channels/:id
func (h *ChannelHandler) Delete(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.DeleteChannel(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete channel")
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// Status handles GET /api/channels/:id/status
func (h *ChannelHandler) Status(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	status, err := h.pipeline.ChannelStatus(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load channel status")
	}
	return c.JSON(status)
}

// Videos handles GET /api/channels/:id/videos
func (h *ChannelHandler) Videos(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	videos, err := h.svc.ListChannelVideos(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list videos")
	}
	return c.JSON(videos)
}

// Sync handles POST /api/channels/:id/sync
func (h *ChannelHandler) Sync(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	added, err := h.pipeline.SyncChannel(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "SYNC_FAILED", "Failed to sync channel")
	}
	return c.JSON(fiber.Map{"newVideos": added})
}

// Process handles POST /api/channels/:id/process — restarts the pipeline.
func (h *ChannelHandler) Process(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Reprocess(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start processing")
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"processing": true})
}
