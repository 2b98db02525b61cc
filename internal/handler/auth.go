package handler

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/middleware"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/service"
	"github.com/adarshtiwari1998/YouTubeCommentBooster/internal/youtube"
)

const defaultAccountID = 1

// AuthHandler manages the OAuth connect/disconnect flow for the operator
// account.
type AuthHandler struct {
	accounts service.AccountStore
	client   *youtube.Client

	mu         sync.Mutex
	state      string
	stateUntil time.Time
}

func NewAuthHandler(accounts service.AccountStore, client *youtube.Client) *AuthHandler {
	return &AuthHandler{accounts: accounts, client: client}
}

// GetAuthURL handles GET /api/auth/url
func (h *AuthHandler) GetAuthURL(c fiber.Ctx) error {
	state, err := h.newState()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create auth state")
	}

	url := h.client.GetAuthURL(state)
	if url == "" {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "OAUTH_UNCONFIGURED", "No OAuth clients configured")
	}
	return c.JSON(fiber.Map{"url": url})
}

// Callback handles GET /api/auth/callback
func (h *AuthHandler) Callback(c fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "code is required")
	}
	if !h.consumeState(c.Query("state")) {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_STATE", "OAuth state mismatch")
	}

	token, err := h.client.ExchangeCode(c.Context(), code)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("oauth exchange failed")
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "OAUTH_EXCHANGE_FAILED", "Failed to exchange authorization code")
	}

	h.client.SetCredentials(token.AccessToken, token.RefreshToken)

	channelID, err := h.client.GetMyChannelID(c.Context())
	if err != nil {
		h.client.ClearCredentials()
		middleware.Logger.Error().Err(err).Msg("resolve own channel failed")
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "OAUTH_IDENTITY_FAILED", "Failed to resolve the connected channel")
	}

	if err := h.accounts.UpdateAccountTokens(c.Context(), defaultAccountID,
		token.AccessToken, token.RefreshToken, channelID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to store credentials")
	}

	return c.JSON(fiber.Map{
		"connected": true,
		"channelId": channelID,
	})
}

// Status handles GET /api/auth/status
func (h *AuthHandler) Status(c fiber.Ctx) error {
	account, err := h.accounts.GetAccount(c.Context(), defaultAccountID)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load account")
	}

	resp := fiber.Map{"connected": account.Connected()}
	if account.YouTubeChannelID != nil {
		resp["channelId"] = *account.YouTubeChannelID
	}
	return c.JSON(resp)
}

// Disconnect handles POST /api/auth/disconnect
func (h *AuthHandler) Disconnect(c fiber.Ctx) error {
	if err := h.accounts.ClearAccountTokens(c.Context(), defaultAccountID); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to clear credentials")
	}
	h.client.ClearCredentials()
	return c.JSON(fiber.Map{"connected": false})
}

func (h *AuthHandler) newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := hex.EncodeToString(buf)

	h.mu.Lock()
	h.state = state
	h.stateUntil = time.Now().Add(10 * time.Minute)
	h.mu.Unlock()
	return state, nil
}

func (h *AuthHandler) consumeState(state string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	ok := state != "" && state == h.state && time.Now().Before(h.stateUntil)
	h.state = ""
	return ok
}
