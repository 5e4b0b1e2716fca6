//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=debounce_test
package debounce

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type setter interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
}
