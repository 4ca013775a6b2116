package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/fcc-microservices/internal/shortener"
)

// insertScript writes both keys only when neither exists.
// KEYS[1] = url:code:<code>, KEYS[2] = url:original:<url>.
var insertScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 or redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], "code", ARGV[1], "original_url", ARGV[2], "created_at", ARGV[3])
redis.call("SET", KEYS[2], ARGV[1])
return 1
`)

// RedisStore is a Redis implementation of shortener.Repository.
type RedisStore struct {
	client     redis.UniversalClient
	codePrefix string // hash per code
	urlPrefix  string // original url -> code
}

// NewRedisStore creates a new Redis-backed URL store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{
		client:     client,
		codePrefix: "url:code:",
		urlPrefix:  "url:original:",
	}
}

func (r *RedisStore) Insert(ctx context.Context, shortURL *shortener.ShortURL) error {
	keys := []string{
		r.codePrefix + string(shortURL.Code),
		r.urlPrefix + shortURL.OriginalURL,
	}

	created, err := insertScript.Run(ctx, r.client, keys,
		string(shortURL.Code),
		shortURL.OriginalURL,
		shortURL.CreatedAt.UnixNano(),
	).Int()
	if err != nil {
		return err
	}

	if created == 0 {
		return shortener.ErrDuplicateKey
	}

	return nil
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	fields, err := r.client.HGetAll(ctx, r.codePrefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, shortener.ErrNotFound
	}

	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, err
	}

	return &shortener.ShortURL{
		Code:        shortener.Code(fields["code"]),
		OriginalURL: fields["original_url"],
		CreatedAt:   time.Unix(0, createdAt).UTC(),
	}, nil
}

func (r *RedisStore) GetByURL(ctx context.Context, originalURL string) (*shortener.ShortURL, error) {
	code, err := r.client.Get(ctx, r.urlPrefix+originalURL).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return r.GetByCode(ctx, shortener.Code(code))
}
