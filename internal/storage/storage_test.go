package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, KeyProducts); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, KeyProducts, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := s.Get(ctx, KeyProducts)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(got) != `[{"id":1}]` {
		t.Fatalf("Get = %s, want [{\"id\":1}]", got)
	}

	if err := s.Delete(ctx, KeyProducts); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get(ctx, KeyProducts); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}

	// Повторное удаление не является ошибкой
	if err := s.Delete(ctx, KeyProducts); err != nil {
		t.Fatalf("repeated Delete error: %v", err)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, KeySession, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	got, err := s.Get(ctx, KeySession)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	got[0] = 'X'

	again, err := s.Get(ctx, KeySession)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if string(again) != `{"id":1}` {
		t.Fatalf("stored value mutated through returned slice: %s", again)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if err := s.Set(ctx, KeyOrders, []byte(`[{"id":42}]`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}

	got, err := reopened.Get(ctx, KeyOrders)
	if err != nil {
		t.Fatalf("Get after reopen error: %v", err)
	}
	if string(got) != `[{"id":42}]` {
		t.Fatalf("Get after reopen = %s, want [{\"id\":42}]", got)
	}
}

func TestFileStore_DeletePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	if err := s.Set(ctx, KeySession, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := s.Delete(ctx, KeySession); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	if _, err := reopened.Get(ctx, KeySession); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete and reopen = %v, want ErrNotFound", err)
	}
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore on corrupt file error: %v", err)
	}

	if _, err := s.Get(context.Background(), KeyProducts); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get from corrupt store = %v, want ErrNotFound", err)
	}
}
