package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/movie-night/picker/internal/http/api"
	"github.com/movie-night/picker/internal/redis"
)

// HealthModule mounts /health. The response carries the watcher heartbeat
// when redis is configured, since the watcher runs as a separate process.
func HealthModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/health", health)
	})
}

func health(ctx *gin.Context) (any, *api.APIError) {
	out := gin.H{"message": "Welcome to the Events API!"}
	if at, due, ok := redis.LastTick(ctx.Request.Context()); ok {
		out["watcher_last_tick"] = at
		out["watcher_last_due_count"] = due
	}
	return out, nil
}
