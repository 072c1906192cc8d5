package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/roomly/backend/internal/domain"
)

func TestMemoryStore_SaveAndLoad(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		data []byte
	}{
		{
			name: "store and retrieve document",
			key:  "rooms",
			data: []byte(`[{"id":"r1","name":"Living Room"}]`),
		},
		{
			name: "store and retrieve empty blob",
			key:  "cart",
			data: []byte(`[]`),
		},
		{
			name: "namespaced key",
			key:  "activity:searches",
			data: []byte(`[{"query":"sofa"}]`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Save(ctx, tt.key, tt.data); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Load(ctx, tt.key)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("Load() = %s, want %s", got, tt.data)
			}
		})
	}
}

func TestMemoryStore_Load_NotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load(context.Background(), "non-existent-key")
	if err != domain.ErrBlobNotFound {
		t.Errorf("Load() error = %v, want %v", err, domain.ErrBlobNotFound)
	}
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, "key", []byte("original")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx, "key")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got[0] = 'X'

	again, err := store.Load(ctx, "key")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(again) != "original" {
		t.Errorf("stored blob was mutated through a returned slice: %s", again)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := "delete-test"
	if err := store.Save(ctx, key, []byte("value")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if _, err := store.Load(ctx, key); err != domain.ErrBlobNotFound {
		t.Errorf("Load() after delete error = %v, want %v", err, domain.ErrBlobNotFound)
	}
}

func TestMemoryStore_Exists(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := "exists-test"

	exists, err := store.Exists(ctx, key)
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if exists {
		t.Errorf("Exists() = true, want false for non-existent key")
	}

	if err := store.Save(ctx, key, []byte("value")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	exists, err = store.Exists(ctx, key)
	if err != nil {
		t.Errorf("Exists() error = %v", err)
	}
	if !exists {
		t.Errorf("Exists() = false, want true after save")
	}
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := fmt.Sprintf("key-%d", id)
			if err := store.Save(ctx, key, []byte("value")); err != nil {
				t.Errorf("Concurrent Save() error = %v", err)
			}
			if _, err := store.Load(ctx, key); err != nil {
				t.Errorf("Concurrent Load() error = %v", err)
			}
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if size := store.Size(); size != 10 {
		t.Errorf("Size() = %d, want 10", size)
	}
}
