package storage

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/stockkeeper/internal/core/domain"
)

const (
	inventoryKeyPrefix = "inventory:"
	DefaultRedisName   = "default"
)

// replaceStockScript swaps the whole hash in one round trip so readers
// never observe a half-written inventory.
var replaceStockScript = redis.NewScript(`
local key = KEYS[1]
redis.call('DEL', key)
for i = 1, #ARGV, 2 do
	redis.call('HSET', key, ARGV[i], ARGV[i + 1])
end
return #ARGV / 2
`)

// RedisAdapter stores the inventory as one hash of item -> quantity.
type RedisAdapter struct {
	client *redis.Client
	key    string
}

func NewRedisAdapter(client *redis.Client, name string) *RedisAdapter {
	if name == "" {
		name = DefaultRedisName
	}
	return &RedisAdapter{client: client, key: inventoryKeyPrefix + name}
}

func (r *RedisAdapter) Key() string {
	return r.key
}

func (r *RedisAdapter) Load(ctx context.Context) (map[string]int, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", r.key, err)
	}

	stock := make(map[string]int, len(fields))
	for item, value := range fields {
		if item == "" {
			return nil, fmt.Errorf("%w: empty item name in %s", domain.ErrFormat, r.key)
		}
		qty, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity of %q is not an integer: %s", domain.ErrFormat, item, value)
		}
		stock[item] = qty
	}
	return stock, nil
}

func (r *RedisAdapter) Save(ctx context.Context, stock map[string]int) error {
	items := make([]string, 0, len(stock))
	for item := range stock {
		items = append(items, item)
	}
	sort.Strings(items)

	args := make([]interface{}, 0, len(items)*2)
	for _, item := range items {
		args = append(args, item, stock[item])
	}

	if err := replaceStockScript.Run(ctx, r.client, []string{r.key}, args...).Err(); err != nil {
		return fmt.Errorf("replace %s: %w", r.key, err)
	}
	return nil
}
