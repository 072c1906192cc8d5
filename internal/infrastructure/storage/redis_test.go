package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/roomly/backend/internal/domain"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	server := miniredis.RunT(t)
	store, err := NewRedisStore(server.Addr(), "", 0)
	if err != nil {
		t.Fatalf("connect store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	data := []byte(`[{"id":"r1","name":"Living Room"}]`)
	if err := store.Save(ctx, "rooms", data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx, "rooms")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Load() = %s, want %s", got, data)
	}
}

func TestRedisStore_Load_NotFound(t *testing.T) {
	store := newTestRedisStore(t)

	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, domain.ErrBlobNotFound) {
		t.Errorf("Load() error = %v, want %v", err, domain.ErrBlobNotFound)
	}
}

func TestRedisStore_OverwriteReplacesDocument(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "cart", []byte(`["old"]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, "cart", []byte(`["new"]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx, "cart")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(got) != `["new"]` {
		t.Errorf("Load() = %s, want [\"new\"]", got)
	}
}

func TestRedisStore_DeleteAndExists(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "users", []byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err := store.Exists(ctx, "users")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false, want true after save")
	}

	if err := store.Delete(ctx, "users"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	exists, err = store.Exists(ctx, "users")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true, want false after delete")
	}

	if err := store.Delete(ctx, "users"); err != nil {
		t.Errorf("Delete() on missing key error = %v, want nil", err)
	}
}

func TestRedisStore_KeysArePrefixed(t *testing.T) {
	server := miniredis.RunT(t)
	store, err := NewRedisStore(server.Addr(), "", 0)
	if err != nil {
		t.Fatalf("connect store: %v", err)
	}
	defer store.Close()

	if err := store.Save(context.Background(), "rooms", []byte(`[]`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !server.Exists("roomly:rooms") {
		t.Error("expected key to be stored under the roomly: prefix")
	}
}

func TestRedisStore_ConnectFailure(t *testing.T) {
	if _, err := NewRedisStore("127.0.0.1:1", "", 0); err == nil {
		t.Error("expected connection error for unreachable address")
	}
}
