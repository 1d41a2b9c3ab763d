package rest

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/tokenauth/internal/common"
	"github.com/dmitrijs2005/tokenauth/internal/logging"
)

// NewRouter wires the middleware chain and the API routes.
func NewRouter(h *Handler, origins []string, l logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), AccessLog(l), Recovery(l))

	if len(origins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = origins
		corsConfig.AllowHeaders = []string{
			"Origin",
			"Content-Type",
			"Accept",
			common.AuthorizationHeaderName,
			common.RequestIDHeaderName,
		}
		corsConfig.ExposeHeaders = []string{common.RequestIDHeaderName}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", h.Health)

	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	protected := router.Group("")
	protected.Use(RequireBearer(h.users, l))
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/user", h.Me)
	}

	router.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "not found")
	})

	return router
}
