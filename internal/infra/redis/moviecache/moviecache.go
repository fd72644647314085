package infra_redis_moviecache

import (
	"context"
	"time"

	"github.com/go-redis/redis"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/humanbelnik/moviematch/internal/model"
)

// Driver caches movie metadata as JSON under "<key>:<movie id>".
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

type entry struct {
	ID            uuid.UUID `json:"id"`
	KinopoiskID   int       `json:"kinopoisk_id"`
	Title         string    `json:"title"`
	TitleOriginal string    `json:"title_original,omitempty"`
	Year          int       `json:"year"`
	Genre         string    `json:"genre,omitempty"`
	PosterLink    string    `json:"poster_link,omitempty"`
	Description   string    `json:"description,omitempty"`
	Rating        float64   `json:"rating,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

func (d *Driver) Set(ctx context.Context, mm model.MovieMeta) error {
	raw, err := json.Marshal(entry(mm))
	if err != nil {
		return err
	}
	return d.client.WithContext(ctx).Set(d.getFullKey(mm.ID), raw, d.ttl).Err()
}

func (d *Driver) Get(ctx context.Context, id uuid.UUID) (model.MovieMeta, bool, error) {
	raw, err := d.client.WithContext(ctx).Get(d.getFullKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return model.MovieMeta{}, false, nil
		}
		return model.MovieMeta{}, false, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return model.MovieMeta{}, false, err
	}
	return model.MovieMeta(e), true, nil
}

func (d *Driver) Delete(ctx context.Context, id uuid.UUID) error {
	return d.client.WithContext(ctx).Del(d.getFullKey(id)).Err()
}

func (d *Driver) getFullKey(id uuid.UUID) string {
	if d.key != "" {
		return d.key + ":" + id.String()
	}
	return id.String()
}
