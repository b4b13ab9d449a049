package cache

import (
	"sync"
	"testing"
	"time"
)

func TestSetGetExpiry(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	m.Set("k", "v", 30*time.Millisecond)
	if got, ok := m.Get("k"); !ok || got != "v" {
		t.Fatalf("Get = %v, %v", got, ok)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := m.Get("k"); ok {
		t.Fatal("expired key still readable")
	}
}

func TestIncrementWithTTL(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	for want := int64(1); want <= 3; want++ {
		got, err := m.IncrementWithTTL("counter", 1, time.Minute)
		if err != nil {
			t.Fatalf("increment: %v", err)
		}
		if got != want {
			t.Fatalf("counter = %d, want %d", got, want)
		}
	}
}

func TestIncrementResetsAfterWindow(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	if _, err := m.IncrementWithTTL("counter", 5, 20*time.Millisecond); err != nil {
		t.Fatalf("increment: %v", err)
	}
	time.Sleep(40 * time.Millisecond)

	got, err := m.IncrementWithTTL("counter", 1, time.Minute)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if got != 1 {
		t.Fatalf("counter = %d, want 1 after window reset", got)
	}
}

func TestIncrementRejectsNonInteger(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	m.Set("k", "not a number", time.Minute)
	if _, err := m.IncrementWithTTL("k", 1, time.Minute); err == nil {
		t.Fatal("expected ErrNotInteger")
	}
}

func TestIncrementConcurrent(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, _ = m.IncrementWithTTL("counter", 1, time.Minute)
			}
		}()
	}
	wg.Wait()

	got, err := m.IncrementWithTTL("counter", 0, time.Minute)
	if err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if got != workers*perWorker {
		t.Fatalf("counter = %d, want %d", got, workers*perWorker)
	}
}
