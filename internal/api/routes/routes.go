package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/api/handlers"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/api/middleware"
)

type Deps struct {
	Entry   *handlers.EntryHandler
	Profile *handlers.ProfileHandler
	Trace   *handlers.TraceHandler
	WS      *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes: Supabase JWT when a secret is configured,
	// service-key header auth otherwise (local demos, load tests).
	auth := r.Group("/")
	if os.Getenv("SUPABASE_JWT_SECRET") != "" {
		auth.Use(middleware.JWTAuth())
	} else {
		auth.Use(middleware.ServiceKeyAuth())
	}

	auth.POST("/entries", d.Entry.Process)
	auth.GET("/entries", d.Entry.Recent)

	auth.GET("/profile/me", d.Profile.Me)
	auth.POST("/profile/reset", d.Profile.Reset)

	// WebSocket
	auth.GET("/ws/entries", d.WS.EntriesWS)

	// Admin diagnostics
	admin := auth.Group("/")
	admin.Use(middleware.RequireRole("admin"))
	admin.GET("/traces/:user_id", d.Trace.ListByUser)
}
