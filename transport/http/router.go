package http

import (
	"github.com/gin-gonic/gin"

	"github.com/openlance/vouch/ports"
	"github.com/openlance/vouch/service"
)

// SetupRouter sets up the gin router with the wallet auth endpoints and the
// protected API group.
func SetupRouter(authService *service.AuthService, users ports.UserStore, cookieName string, secureCookie bool) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService, users, cookieName, secureCookie)

	auth := router.Group("/auth/wallet")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/verify", handlers.Verify)
	}

	api := router.Group("/api")
	api.Use(AuthMiddleware(authService, cookieName))
	{
		api.GET("/me", handlers.Me)
	}

	return router
}
