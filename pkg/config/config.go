package config

import (
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Keys understood by the engine. Overridable via config file or the
// BELOT_* environment (dots become underscores).
const (
	KeyTargetScore       = "game.target_score"
	KeyMaxTables         = "table.max"
	KeyFinishedRetention = "table.finished_retention"
	KeyEventQueueSize    = "events.queue_size"
	KeyEventConcurrency  = "events.concurrency"
	KeyRedisAddr         = "redis.addr"
)

func init() {
	viper.SetDefault(KeyTargetScore, 151)
	viper.SetDefault(KeyMaxTables, 1000)
	viper.SetDefault(KeyFinishedRetention, "30m")
	viper.SetDefault(KeyEventQueueSize, 1000)
	viper.SetDefault(KeyEventConcurrency, 4)
	viper.SetDefault(KeyRedisAddr, "localhost:6379")

	viper.SetEnvPrefix("belot")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// TargetScore is the cumulative score that ends a game.
func TargetScore() int {
	return cast.ToInt(viper.Get(KeyTargetScore))
}

// MaxTables caps the number of live tables in one process.
func MaxTables() int {
	return cast.ToInt(viper.Get(KeyMaxTables))
}

// FinishedRetention is how long a finished table's final status stays
// readable after the table is removed.
func FinishedRetention() time.Duration {
	d := cast.ToDuration(viper.Get(KeyFinishedRetention))
	if d <= 0 {
		d = 30 * time.Minute
	}
	return d
}

// EventQueueSize bounds the pending event queue per stream.
func EventQueueSize() int {
	return cast.ToInt(viper.Get(KeyEventQueueSize))
}

// EventConcurrency is the worker count for event handler dispatch.
func EventConcurrency() int {
	return cast.ToInt(viper.Get(KeyEventConcurrency))
}

// RedisAddr is the event stream backend address.
func RedisAddr() string {
	return cast.ToString(viper.Get(KeyRedisAddr))
}
