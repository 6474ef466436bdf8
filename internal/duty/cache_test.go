package duty_test

import (
	"context"
	"testing"
	"time"

	"github.com/nanami9426/officerchat/internal/duty"
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/redis/go-redis/v9"
)

func TestCachedResolverFallsThroughWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	calls := 0
	want := models.OfficerUnit(&models.Officer{ID: "o1"})
	inner := duty.ResolverFunc(func(ctx context.Context, userID string) (*models.Unit, error) {
		calls++
		return want, nil
	})

	r := duty.NewCachedResolver(inner, client, time.Minute)
	for i := 0; i < 2; i++ {
		got, err := r.ActiveUnit(context.Background(), "user-a")
		if err != nil || got != want {
			t.Fatalf("expected inner unit, got %+v (%v)", got, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected every call to reach the inner resolver, got %d", calls)
	}
}
