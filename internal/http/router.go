// Package http exposes the wallet core over a local API. This is the
// stand-in for the presentation layer, which is out of scope.
package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/account", h.Account)
		api.GET("/assets", h.Assets)

		api.POST("/transfer", h.Transfer)
		api.POST("/import", h.Import)
		api.POST("/faucet", h.Faucet)
		api.POST("/tab", h.Tab)
	}

	return r
}
