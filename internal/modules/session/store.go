// README: Session store: one active booking session per profile, Redis-backed.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "booking:session:%s"
	// Abandoned selections expire on their own; a week comfortably covers
	// any booking flow.
	sessionTTL = 7 * 24 * time.Hour
)

// Store holds at most one active BookingSession per profile. Load returns
// (nil, nil) when there is no usable session: missing and corrupt values look
// the same to callers, who then rebuild a fresh session from page parameters.
type Store interface {
	Load(ctx context.Context, profileID string) (*BookingSession, error)
	Save(ctx context.Context, profileID string, s *BookingSession) error
	Clear(ctx context.Context, profileID string) error
}

type RedisStore struct {
	redis  *redis.Client
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{redis: client, logger: logger}
}

func (s *RedisStore) Load(ctx context.Context, profileID string) (*BookingSession, error) {
	raw, err := s.redis.Get(ctx, sessionKey(profileID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess, err := decode(raw)
	if err != nil {
		s.logger.Warn("session: corrupt stored value, treating as no session",
			"profile", profileID, "err", err)
		return nil, nil
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, profileID string, sess *BookingSession) error {
	raw, err := encode(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(profileID), raw, sessionTTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context, profileID string) error {
	return s.redis.Del(ctx, sessionKey(profileID)).Err()
}

func sessionKey(profileID string) string {
	return fmt.Sprintf(keyPrefix, profileID)
}

// MemoryStore backs tests and local development.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(_ context.Context, profileID string) (*BookingSession, error) {
	m.mu.Lock()
	raw, ok := m.data[profileID]
	m.mu.Unlock()
	if !ok {
		return nil, nil
	}
	sess, err := decode(raw)
	if err != nil {
		return nil, nil
	}
	return sess, nil
}

func (m *MemoryStore) Save(_ context.Context, profileID string, sess *BookingSession) error {
	raw, err := encode(sess)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[profileID] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, profileID string) error {
	m.mu.Lock()
	delete(m.data, profileID)
	m.mu.Unlock()
	return nil
}

func encode(s *BookingSession) ([]byte, error) {
	return json.Marshal(s)
}

func decode(raw []byte) (*BookingSession, error) {
	var s BookingSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
