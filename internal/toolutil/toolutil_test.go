package toolutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytcontent/internal/engine"
)

type payload struct {
	Title string `json:"title"`
	Views int    `json:"views"`
}

func TestCacheJSONRoundTrip(t *testing.T) {
	engine.InitCache("", time.Minute, 100)
	ctx := context.Background()
	key := engine.CacheKey("toolutil", "roundtrip")

	if _, ok := CacheLoadJSON[payload](ctx, key); ok {
		t.Fatal("expected miss")
	}
	CacheStoreJSON(ctx, key, payload{Title: "t", Views: 3})
	got, ok := CacheLoadJSON[payload](ctx, key)
	if !ok || got.Title != "t" || got.Views != 3 {
		t.Errorf("got %+v, %v", got, ok)
	}
}

func TestCacheLoadJSONBadData(t *testing.T) {
	engine.InitCache("", time.Minute, 100)
	ctx := context.Background()
	key := engine.CacheKey("toolutil", "bad")
	engine.CacheSet(ctx, key, []byte("not json"))
	if _, ok := CacheLoadJSON[payload](ctx, key); ok {
		t.Error("undecodable value must be a miss")
	}
}

func TestCached(t *testing.T) {
	engine.InitCache("", time.Minute, 100)
	ctx := context.Background()
	key := engine.CacheKey("toolutil", "cached")

	calls := 0
	fn := func(context.Context) (payload, error) {
		calls++
		return payload{Title: "x"}, nil
	}
	for i := 0; i < 3; i++ {
		v, err := Cached(ctx, key, fn)
		if err != nil || v.Title != "x" {
			t.Fatalf("got %+v, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	errKey := engine.CacheKey("toolutil", "err")
	failing := func(context.Context) (payload, error) { calls++; return payload{}, boom }
	if _, err := Cached(ctx, errKey, failing); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if _, ok := CacheLoadJSON[payload](ctx, errKey); ok {
		t.Error("errors must not be cached")
	}
}
