package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/campushare/campushare-backend/internal/http/handlers"
)

func wireRouter(cfg Config, h Handlers, mw Middleware) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Moderator-Key"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("campushare"))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(mw.Auth.RequireAuth())
	{
		// Department resolver
		api.GET("/institutions/:id/departments/candidates", h.Department.ListCandidates)
		api.POST("/institutions/:id/departments/resolve", h.Department.ResolveSelection)

		// Resource directory
		api.GET("/resources", h.Resource.Query)
		api.POST("/resources", h.Resource.Create)
		api.GET("/resources/:id", h.Resource.Get)
		api.PATCH("/resources/:id/type", h.Resource.UpdateType)
		api.DELETE("/resources/:id", h.Resource.Delete)

		// Engagement
		api.POST("/resources/:id/vote", h.Vote.ToggleResourceVote)
		api.GET("/resources/:id/comments", h.Comment.List)
		api.POST("/resources/:id/comments", h.Comment.Create)
		api.POST("/comments/:id/vote", h.Vote.ToggleCommentVote)

		// Leaderboard
		api.GET("/institutions/:id/leaderboard", h.Leaderboard.List)
		api.GET("/institutions/:id/leaderboard/me", h.Leaderboard.Me)

		// Reports
		api.POST("/resources/:id/reports", h.Report.Submit)

		// Change notifications
		api.GET("/events/stream", h.Realtime.Stream)
	}

	moderation := api.Group("/")
	moderation.Use(mw.Moderator.RequireModerator())
	{
		moderation.POST("/resources/:id/verify", h.Resource.SetVerified)
		moderation.GET("/reports", h.Report.List)
		moderation.GET("/reports/:id", h.Report.Get)
		moderation.POST("/reports/:id/resolve", h.Report.Resolve)
		moderation.POST("/reports/:id/resolve-and-delete", h.Report.ResolveAndDelete)
	}

	return router
}
