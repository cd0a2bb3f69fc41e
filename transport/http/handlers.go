package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openlance/vouch/core"
	"github.com/openlance/vouch/ports"
	"github.com/openlance/vouch/service"
)

// CookieMaxAge is the lifetime of the session cookie. Independent of the
// access token lifetime; middleware still rejects expired tokens inside a
// live cookie.
const CookieMaxAge = 7 * 24 * time.Hour

// AuthHandlers contains the HTTP handlers for the wallet auth endpoints.
type AuthHandlers struct {
	authService  *service.AuthService
	users        ports.UserStore
	cookieName   string
	secureCookie bool
	logger       *slog.Logger
}

// NewAuthHandlers creates new auth handlers. secureCookie should be true in
// production so the session cookie is only sent over TLS.
func NewAuthHandlers(authService *service.AuthService, users ports.UserStore, cookieName string, secureCookie bool) *AuthHandlers {
	return &AuthHandlers{
		authService:  authService,
		users:        users,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		logger:       slog.Default().With("component", "http"),
	}
}

// userBody is the identity shape returned to clients on login.
type userBody struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	WalletAddress string `json:"walletAddress"`
}

// Challenge handles POST /auth/wallet/challenge.
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ch, err := h.authService.RequestChallenge(c.Request.Context(), req.Address)
	if err != nil {
		h.logger.Error("failed to create challenge", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"address":   ch.Address,
		"challenge": ch.Text,
	})
}

// Verify handles POST /auth/wallet/verify. Every authentication failure
// collapses to the same unauthorized response; the distinguishing detail is
// logged server-side by the service.
func (h *AuthHandlers) Verify(c *gin.Context) {
	var req struct {
		Address   string `json:"address" binding:"required"`
		Signature string `json:"signature" binding:"required"`
		PublicKey string `json:"publicKey"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := h.authService.Verify(c.Request.Context(), req.Address, req.Signature, req.PublicKey)
	if err != nil {
		// Authentication failures collapse to one unauthorized outcome;
		// store or signer faults are not authentication failures.
		if errors.Is(err, core.ErrNoChallenge) || errors.Is(err, core.ErrInvalidSignature) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "signature verification failed"})
			return
		}
		h.logger.Error("failed to verify login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify login"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, result.AccessToken, int(CookieMaxAge.Seconds()), "/", "", h.secureCookie, true)

	body := gin.H{
		"access_token": result.AccessToken,
		"user": userBody{
			ID:            result.Identity.ID,
			Email:         result.Identity.Email,
			Name:          result.Identity.Name,
			WalletAddress: result.Identity.WalletAddress,
		},
	}
	if result.Warning != "" {
		body["warning"] = result.Warning
	}

	c.JSON(http.StatusOK, body)
}

// Me handles GET /api/me for an authenticated session, returning the stored
// identity behind the session subject.
func (h *AuthHandlers) Me(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session not found in context"})
		return
	}

	identity, err := h.users.FindByID(c.Request.Context(), session.Subject)
	if err != nil {
		h.logger.Warn("session subject has no backing identity", "user_id", session.Subject)
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, userBody{
		ID:            identity.ID,
		Email:         identity.Email,
		Name:          identity.Name,
		WalletAddress: identity.WalletAddress,
	})
}
