package security

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session values in Redis, keyed by a session-ID cookie.
// Suitable for multi-replica deployments where the in-memory store won't do.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session store from a URL of the form
// redis://[:password@]host:port/db and verifies the connection.
func NewRedisStore(redisURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) key(sid, key string) string {
	return s.prefix + sid + ":" + key
}

func (s *RedisStore) Get(r *http.Request, key string) (string, bool) {
	cookie, err := r.Cookie(sidCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	value, err := s.client.Get(r.Context(), s.key(cookie.Value, key)).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

func (s *RedisStore) Set(w http.ResponseWriter, r *http.Request, key, value string, ttl time.Duration) {
	sid := s.ensureSessionID(w, r, ttl)
	s.client.Set(r.Context(), s.key(sid, key), value, ttl)
}

func (s *RedisStore) Delete(w http.ResponseWriter, r *http.Request, key string) {
	cookie, err := r.Cookie(sidCookieName)
	if err != nil || cookie.Value == "" {
		return
	}
	s.client.Del(r.Context(), s.key(cookie.Value, key))
}

func (s *RedisStore) ensureSessionID(w http.ResponseWriter, r *http.Request, ttl time.Duration) string {
	if cookie, err := r.Cookie(sidCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sid := uuid.New().String()
	cookie := &http.Cookie{
		Name:     sidCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, cookie)
	r.AddCookie(cookie)
	return sid
}
