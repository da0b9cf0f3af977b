package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewFromGoRedis(rdb, zap.NewNop()), mr
}

func TestCheckRateLimit_AllowThenDeny(t *testing.T) {
	c, _ := setupTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, remaining, err := c.CheckRateLimit(ctx, "user-1:POST:/api/v1/schedules", 3, time.Minute)
		if err != nil {
			t.Fatalf("第 %d 次请求出错: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("第 %d 次请求应放行", i+1)
		}
		if want := 3 - i - 1; remaining != want {
			t.Errorf("第 %d 次请求期望剩余 %d，实际 %d", i+1, want, remaining)
		}
		// 同一纳秒内的请求会复用 ZSET 成员
		time.Sleep(time.Millisecond)
	}

	allowed, remaining, err := c.CheckRateLimit(ctx, "user-1:POST:/api/v1/schedules", 3, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed || remaining != 0 {
		t.Errorf("超限后应拒绝且剩余为 0，实际 allowed=%v remaining=%d", allowed, remaining)
	}
}

func TestCheckRateLimit_KeysAreIndependent(t *testing.T) {
	c, mr := setupTestClient(t)
	ctx := context.Background()

	if allowed, _, _ := c.CheckRateLimit(ctx, "a", 1, time.Minute); !allowed {
		t.Fatal("a 首次请求应放行")
	}
	if allowed, _, _ := c.CheckRateLimit(ctx, "a", 1, time.Minute); allowed {
		t.Error("a 第二次请求应被拒绝")
	}
	if allowed, _, _ := c.CheckRateLimit(ctx, "b", 1, time.Minute); !allowed {
		t.Error("b 不应受 a 的计数影响")
	}

	if !mr.Exists(rateLimitPrefix + "a") {
		t.Errorf("期望存在键 %sa", rateLimitPrefix)
	}
	if ttl := mr.TTL(rateLimitPrefix + "a"); ttl <= 0 || ttl > time.Minute {
		t.Errorf("键应随窗口过期，实际 TTL=%v", ttl)
	}
}

func TestCheckRateLimit_RedisDown(t *testing.T) {
	c, mr := setupTestClient(t)
	mr.Close()

	if _, _, err := c.CheckRateLimit(context.Background(), "k", 1, time.Minute); err == nil {
		t.Error("Redis 不可用时应返回错误，由中间件决定放行")
	}
}

func TestIsBlacklisted(t *testing.T) {
	c, mr := setupTestClient(t)
	ctx := context.Background()

	if err := mr.Set(blacklistPrefix+"jti-revoked", "1"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	revoked, err := c.IsBlacklisted(ctx, "jti-revoked")
	if err != nil || !revoked {
		t.Errorf("期望已吊销，实际 %v err=%v", revoked, err)
	}
	revoked, err = c.IsBlacklisted(ctx, "jti-fresh")
	if err != nil || revoked {
		t.Errorf("期望未吊销，实际 %v err=%v", revoked, err)
	}
}
