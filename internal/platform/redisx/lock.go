package redisx

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld 锁已被其他实例持有
var ErrLockHeld = errors.New("lock is held by another holder")

// Locker 互斥锁，release 只释放自己持有的那一把
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), err error)
}

// 只有 value 仍是自己的令牌时才删除，避免误删过期后被别人抢到的锁
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker 基于 SET NX PX 的分布式锁，多个实例之间互斥
type RedisLocker struct {
	client *redis.Client
	prefix string
}

func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

func (l *RedisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	key := Key(l.prefix, "lock", name)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
	}, nil
}

// MemoryLocker 进程内锁，Redis 未启用时使用
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[string]memoryLease
	clock func() time.Time
}

type memoryLease struct {
	token     string
	expiresAt time.Time
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]memoryLease), clock: time.Now}
}

func (l *MemoryLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if lease, ok := l.held[name]; ok && now.Before(lease.expiresAt) {
		return nil, ErrLockHeld
	}

	token := uuid.NewString()
	l.held[name] = memoryLease{token: token, expiresAt: now.Add(ttl)}

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if lease, ok := l.held[name]; ok && lease.token == token {
			delete(l.held, name)
		}
	}, nil
}

// NewLocker 有 Redis 时使用分布式锁，否则退回进程内锁
func NewLocker(client *redis.Client, prefix string) Locker {
	if client == nil {
		return NewMemoryLocker()
	}
	return NewRedisLocker(client, prefix)
}
