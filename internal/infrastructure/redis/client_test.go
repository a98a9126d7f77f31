package redis

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestNewClient(t *testing.T) {
	t.Run("connects and pings", func(t *testing.T) {
		srv := miniredis.RunT(t)

		ctx := context.Background()
		client, err := NewClient(ctx, fmt.Sprintf("redis://%s", srv.Addr()))
		if err != nil {
			t.Fatalf("expected client, got error: %v", err)
		}
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			t.Fatalf("ping failed: %v", err)
		}
	})

	t.Run("rejects malformed url", func(t *testing.T) {
		if _, err := NewClient(context.Background(), "://bad-url"); err == nil {
			t.Fatalf("expected error for invalid URL")
		}
	})

	t.Run("fails when server is unreachable", func(t *testing.T) {
		srv := miniredis.RunT(t)
		url := fmt.Sprintf("redis://%s", srv.Addr())
		srv.Close()

		if _, err := NewClient(context.Background(), url); err == nil {
			t.Fatalf("expected ping error when server is down")
		}
	})
}
