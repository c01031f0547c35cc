package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yerinchoi/lingotalk-backend/internal/domain"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/envutil"
	"github.com/yerinchoi/lingotalk-backend/internal/pkg/logger"
)

// SessionStore keeps the ephemeral roleplay session state (topic, roles,
// pending vocabulary) in redis, keyed by session id.
type SessionStore interface {
	Put(ctx context.Context, state *types.SessionState) error
	Get(ctx context.Context, sessionID string) (*types.SessionState, error)
	Delete(ctx context.Context, sessionID string) error
	Close() error
}

type sessionStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewSessionStore(log *logger.Logger) (SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := envutil.GetEnv("REDIS_ADDR", "localhost:6379", log)
	ttlSec := envutil.GetEnvAsInt("SESSION_TTL_SECONDS", 2*60*60, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &sessionStore{
		log:    log.With("client", "RedisSessionStore"),
		rdb:    rdb,
		prefix: "session:",
		ttl:    time.Duration(ttlSec) * time.Second,
	}, nil
}

// NewSessionStoreWithClient wires an existing client; used by tests.
func NewSessionStoreWithClient(log *logger.Logger, rdb *goredis.Client, ttl time.Duration) SessionStore {
	return &sessionStore{
		log:    log.With("client", "RedisSessionStore"),
		rdb:    rdb,
		prefix: "session:",
		ttl:    ttl,
	}
}

func (s *sessionStore) Put(ctx context.Context, state *types.SessionState) error {
	if state == nil || state.SessionID == "" {
		return fmt.Errorf("missing session id")
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.prefix+state.SessionID, raw, s.ttl).Err()
}

// Get returns nil when the session is unknown or expired.
func (s *sessionStore) Get(ctx context.Context, sessionID string) (*types.SessionState, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+sessionID).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state types.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.log.Warn("bad session payload in redis", "session_id", sessionID, "error", err)
		return nil, nil
	}
	return &state, nil
}

func (s *sessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, s.prefix+sessionID).Err()
}

func (s *sessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
