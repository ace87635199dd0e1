package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/restopos-api/internal/config"
	"github.com/sangkips/restopos-api/internal/domain/register"
	domainRepo "github.com/sangkips/restopos-api/internal/domain/repository"
	"github.com/sangkips/restopos-api/pkg/apperror"
)

const (
	keyRegisterSession = "pos:register:session:%s"
	keyRegisterLock    = "pos:register:lock:%s"

	defaultLockTTL   = 30 * time.Second
	defaultLockWait  = 5 * time.Second
	defaultLockRetry = 20 * time.Millisecond
)

// releaseLock deletes the lock only while it still holds the caller's token,
// so an expired holder never frees a lock taken over by someone else.
var releaseLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisStore keeps sessions in Redis so every API instance sees the same
// register state. Register locks live next to the sessions so instances
// serialize on the same key.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	lockTTL   time.Duration
	lockWait  time.Duration
	lockRetry time.Duration
}

// NewRedisClient connects to the configured Redis server
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:    client,
		ttl:       ttl,
		lockTTL:   defaultLockTTL,
		lockWait:  defaultLockWait,
		lockRetry: defaultLockRetry,
	}
}

var _ domainRepo.SessionRepository = (*RedisStore)(nil)

func redisKey(branchID uuid.UUID, registerID string) string {
	return fmt.Sprintf(keyRegisterSession, register.Key(branchID, registerID))
}

func lockKey(branchID uuid.UUID, registerID string) string {
	return fmt.Sprintf(keyRegisterLock, register.Key(branchID, registerID))
}

func (s *RedisStore) Get(ctx context.Context, branchID uuid.UUID, registerID string) (*register.Session, error) {
	data, err := s.client.Get(ctx, redisKey(branchID, registerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load register session: %w", err)
	}

	var sess register.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode register session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *register.Session) error {
	sess.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(sess.BranchID, sess.RegisterID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save register session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, branchID uuid.UUID, registerID string) error {
	return s.client.Del(ctx, redisKey(branchID, registerID)).Err()
}

// Lock takes the register lock with SET NX, polling until lockWait runs out.
// The lock expires after lockTTL in case its holder dies.
func (s *RedisStore) Lock(ctx context.Context, branchID uuid.UUID, registerID string) (func(), error) {
	key := lockKey(branchID, registerID)
	token := uuid.NewString()
	deadline := time.Now().Add(s.lockWait)

	for {
		ok, err := s.client.SetNX(ctx, key, token, s.lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("lock register: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, apperror.ErrRegisterBusy
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lock register: %w", ctx.Err())
		case <-time.After(s.lockRetry):
		}
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseLock.Run(releaseCtx, s.client, []string{key}, token).Err()
	}, nil
}
