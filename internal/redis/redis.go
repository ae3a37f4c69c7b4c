package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	lastTickKey     = "watcher:last_tick"
	lastDueCountKey = "watcher:last_due_count"
	heartbeatTTL    = 5 * time.Minute
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// RecordTick notes when the watcher last ran and how many events were due,
// so the separate API process can report whether resolution is alive. Keys
// expire after a few missed ticks.
func RecordTick(ctx context.Context, at time.Time, dueCount int) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, lastTickKey, at.Format(time.RFC3339), heartbeatTTL).Err(); err != nil {
		log.Error().Err(err).Msg("failed to record watcher tick in redis")
		return
	}
	if err := Rdb.Set(ctx, lastDueCountKey, dueCount, heartbeatTTL).Err(); err != nil {
		log.Error().Err(err).Msg("failed to record watcher due count in redis")
	}
}

// LastTick returns the recorded heartbeat; ok is false when redis is not
// configured or no tick has been recorded recently.
func LastTick(ctx context.Context) (string, int, bool) {
	if Rdb == nil {
		return "", 0, false
	}
	at, err := Rdb.Get(ctx, lastTickKey).Result()
	if err != nil {
		return "", 0, false
	}
	count, _ := Rdb.Get(ctx, lastDueCountKey).Int()
	return at, count, true
}
