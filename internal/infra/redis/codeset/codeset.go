package infra_redis_codeset

import (
	"context"

	"github.com/go-redis/redis"
)

// Driver keeps the codes of open rooms in one Redis set.
type Driver struct {
	client *redis.Client
	key    string
}

func New(
	client *redis.Client,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Contains(ctx context.Context, code string) (bool, error) {
	return d.client.WithContext(ctx).SIsMember(d.key, code).Result()
}

func (d *Driver) Add(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	return d.client.WithContext(ctx).SAdd(d.key, code).Err()
}

func (d *Driver) Remove(ctx context.Context, code string) error {
	return d.client.WithContext(ctx).SRem(d.key, code).Err()
}

// Reset replaces the set with codes, used to resync after a restart.
func (d *Driver) Reset(ctx context.Context, codes []string) error {
	pipe := d.client.WithContext(ctx).TxPipeline()
	pipe.Del(d.key)
	if len(codes) > 0 {
		members := make([]interface{}, len(codes))
		for i, c := range codes {
			members[i] = c
		}
		pipe.SAdd(d.key, members...)
	}
	_, err := pipe.Exec()
	return err
}
