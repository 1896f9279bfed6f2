package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ArnW0lf/ParaJose/infrastructure/realtime"
	httpHandler "github.com/ArnW0lf/ParaJose/interfaces/http"
	"github.com/ArnW0lf/ParaJose/interfaces/middleware"
)

func InitiateRouter(
	adaptHandler httpHandler.IAdaptHandler,
	publishHandler httpHandler.IPublishHandler,
	postHandler httpHandler.IPostHandler,
	tiktokOAuthHandler httpHandler.ITikTokOAuthHandler,
	publishHub *realtime.Hub,
	secretKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:4201", "https://localhost:4200", "https://localhost:4201"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// OAuth routes stay outside the auth group: the provider redirects the
	// user's browser here without our bearer token.
	if tiktokOAuthHandler != nil {
		router.GET("/auth/tiktok", tiktokOAuthHandler.GetAuthURL)
		router.GET("/auth/tiktok/callback", tiktokOAuthHandler.Callback)
	}

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	api.POST("/adapt", adaptHandler.Adapt)
	api.POST("/publish", publishHandler.Publish)

	api.GET("/posts", postHandler.List)
	api.GET("/posts/:id", postHandler.Get)
	api.DELETE("/posts/:id", postHandler.Delete)

	if tiktokOAuthHandler != nil {
		api.GET("/tiktok/token", tiktokOAuthHandler.TokenStatus)
	}
	if publishHub != nil {
		api.GET("/publish/stream", publishHub.Serve)
	}

	return router
}
