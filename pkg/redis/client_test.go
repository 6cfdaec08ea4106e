package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestKeyBuilders(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.CurrentOrderKey("renter-9"); got != "cm:current_order:renter-9" {
		t.Fatalf("unexpected current order key %q", got)
	}
	if got := c.CartKey("renter-9"); got != "cm:cart:renter-9" {
		t.Fatalf("unexpected cart key %q", got)
	}
	if got := c.CheckoutLockKey("cart-1"); got != "cm:checkout_lock:cart-1" {
		t.Fatalf("unexpected lock key %q", got)
	}
	if got := c.buildKey("", ""); got != "cm" {
		t.Fatalf("empty parts should collapse to namespace, got %q", got)
	}
}

func TestGetMapsMissToNotFound(t *testing.T) {
	t.Parallel()

	c := &Client{store: newMockCmdable()}
	if _, err := c.Get(context.Background(), "cm:cart:missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetThenGetRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &Client{store: newMockCmdable()}

	if err := c.Set(ctx, "cm:cart:r1", "payload", time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	val, err := c.Get(ctx, "cm:cart:r1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if val != "payload" {
		t.Fatalf("unexpected value %q", val)
	}

	if err := c.Del(ctx, "cm:cart:r1"); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := c.Get(ctx, "cm:cart:r1"); err != ErrNotFound {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestSetNXOnlyFirstWriterWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := &Client{store: newMockCmdable()}

	ok, err := c.SetNX(ctx, "cm:checkout_lock:cart-1", "1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("first SetNX should win: ok=%v err=%v", ok, err)
	}
	ok, err = c.SetNX(ctx, "cm:checkout_lock:cart-1", "1", time.Minute)
	if err != nil {
		t.Fatalf("second SetNX errored: %v", err)
	}
	if ok {
		t.Fatalf("second SetNX should lose")
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if err := c.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error from uninitialized client")
	}
}

// mockCmdable is an in-memory stand-in for the go-redis command surface.
type mockCmdable struct {
	values map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{values: map[string]string{}}
}

func (m *mockCmdable) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.values[key] = toString(value)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if val, ok := m.values[key]; ok {
		cmd.SetVal(val)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if _, exists := m.values[key]; exists {
		cmd.SetVal(false)
		return cmd
	}
	m.values[key] = toString(value)
	cmd.SetVal(true)
	return cmd
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var removed int64
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			delete(m.values, key)
			removed++
		}
	}
	cmd.SetVal(removed)
	return cmd
}

func toString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if b, ok := value.([]byte); ok {
		return string(b)
	}
	return ""
}
