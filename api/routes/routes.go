package routes

import (
	"github.com/coffeemate/random-coffee-backend/internal/config"
	"github.com/coffeemate/random-coffee-backend/internal/handlers"
	"github.com/coffeemate/random-coffee-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies bundles the handlers the router needs
type HandlerDependencies struct {
	AuthHandler        *handlers.AuthHandler
	ParticipantHandler *handlers.ParticipantHandler
	DrawHandler        *handlers.DrawHandler
	FeedbackHandler    *handlers.FeedbackHandler
	SettingsHandler    *handlers.SettingsHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Participants report on their own meetings without logging in;
		// the bot relays their chat id.
		public.POST("/feedback", deps.FeedbackHandler.SubmitFeedback)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		participants := protected.Group("/participants")
		{
			participants.GET("", deps.ParticipantHandler.GetAllParticipants)
			participants.GET("/:id", deps.ParticipantHandler.GetParticipantByID)
			participants.POST("", deps.ParticipantHandler.Register)
			participants.PUT("/:id", deps.ParticipantHandler.UpdateParticipant)
			participants.POST("/:id/pause", deps.ParticipantHandler.Pause)
			participants.PUT("/:id/cadence", deps.ParticipantHandler.SetCadence)
			participants.DELETE("/:id", deps.ParticipantHandler.Deactivate)
		}

		draws := protected.Group("/draws")
		{
			draws.GET("", deps.DrawHandler.GetDraws)
			draws.GET("/latest", deps.DrawHandler.GetLatestDraw)
			draws.GET("/:id", deps.DrawHandler.GetDrawByID)
			draws.GET("/:id/pairs", deps.DrawHandler.GetDrawPairs)
			draws.POST("/run", deps.DrawHandler.RunDraw)
		}

		cycles := protected.Group("/cycles")
		{
			cycles.GET("", deps.DrawHandler.GetCycles)
			cycles.GET("/current", deps.DrawHandler.GetCurrentCycle)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("", deps.SettingsHandler.GetSettings)
			settings.PUT("", deps.SettingsHandler.UpdateSettings)
		}

		protected.GET("/feedback/draw/:id", deps.FeedbackHandler.GetFeedbackByDraw)
		protected.GET("/reports/meetings", deps.FeedbackHandler.GetMeetingReport)
	}

	return router
}
