// Package cache - кэш коллекций (отзывы и т.п.) по логическим ключам.
// Значения сериализуются в JSON.
package cache

import (
	"context"
	"fmt"
	"time"
)

type Cache interface {
	// Get читает значение в dest. false - ключа нет или он истек.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Config - настройки кэша
type Config struct {
	Type          string // memory, redis, none
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New создает кэш нужного типа
func New(cfg Config) (Cache, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryCache(), nil
	case "redis":
		return NewRedisCache(&RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "none", "":
		return NoopCache{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache type %q", cfg.Type)
	}
}

// Ключи коллекций отзывов
func ReceivedReviewsKey(userID string) string {
	return "reviews:received:" + userID
}

func GivenReviewsKey(userID string) string {
	return "reviews:given:" + userID
}

// ReviewsGenerationKey - метка поколения коллекций отзывов пользователя.
// Хранится без TTL, новая метка делает старые записи недостижимыми.
func ReviewsGenerationKey(userID string) string {
	return "reviews:gen:" + userID
}

// Versioned - ключ коллекции внутри поколения generation
func Versioned(key, generation string) string {
	if generation == "" {
		return key
	}
	return key + "@" + generation
}

// NoopCache ничего не хранит
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }

func (NoopCache) Close() error { return nil }
