package bot

import (
	"testing"
	"time"
)

func TestPendingStore(t *testing.T) {
	t.Run("put_get_take", func(t *testing.T) {
		store := NewPendingStore[string](time.Minute)
		defer store.Close()

		store.Put(1, "a")
		store.Put(2, "b")

		if v, ok := store.Get(1); !ok || v != "a" {
			t.Fatalf("expected a, got %q (%v)", v, ok)
		}

		if v, ok := store.Take(1); !ok || v != "a" {
			t.Fatalf("expected a from Take, got %q (%v)", v, ok)
		}
		if _, ok := store.Get(1); ok {
			t.Error("expected entry to be gone after Take")
		}
		if _, ok := store.Get(2); !ok {
			t.Error("expected other entry to survive")
		}
	})

	t.Run("replace_resets_value", func(t *testing.T) {
		store := NewPendingStore[string](time.Minute)
		defer store.Close()

		store.Put(1, "old")
		store.Put(1, "new")

		if v, _ := store.Get(1); v != "new" {
			t.Errorf("expected new, got %q", v)
		}
		if store.Len() != 1 {
			t.Errorf("expected 1 entry, got %d", store.Len())
		}
	})

	t.Run("expired_entries_invisible", func(t *testing.T) {
		store := NewPendingStore[string](10 * time.Millisecond)
		defer store.Close()

		store.Put(1, "a")
		time.Sleep(20 * time.Millisecond)

		if _, ok := store.Get(1); ok {
			t.Error("expected expired entry to be invisible to Get")
		}
		if _, ok := store.Take(1); ok {
			t.Error("expected expired entry to be invisible to Take")
		}
		if store.Len() != 0 {
			t.Errorf("expected 0 live entries, got %d", store.Len())
		}
	})

	t.Run("janitor_sweeps", func(t *testing.T) {
		store := NewPendingStore[string](10 * time.Millisecond)
		defer store.Close()
		store.StartJanitor(5 * time.Millisecond)

		store.Put(1, "a")
		time.Sleep(50 * time.Millisecond)

		store.mu.RLock()
		raw := len(store.entries)
		store.mu.RUnlock()
		if raw != 0 {
			t.Errorf("expected janitor to remove expired entries, %d left", raw)
		}
	})
}
