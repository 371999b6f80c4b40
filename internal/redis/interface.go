package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the command surface the stores use
type Client interface {
	redis.UniversalClient
}
