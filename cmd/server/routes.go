package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/movie-night/picker/internal/db"
	"github.com/movie-night/picker/internal/http/api"
	eventsapi "github.com/movie-night/picker/internal/http/api/events/endpoints"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, store db.Store) {
	// CORS: the frontend is served from a different origin
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		eventsapi.HealthModule(),
		eventsapi.EventModule(store),
		eventsapi.RSVPModule(store),
	)
}
