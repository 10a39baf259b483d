package rebuild

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

// waitForCalls polls until the counter reaches want or the deadline passes.
func waitForCalls(t *testing.T, calls *atomic.Int64, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if calls.Load() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("hook calls = %d, want %d", calls.Load(), want)
}

func TestFire(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("hook method = %s, want POST", r.Method)
		}
		if r.ContentLength > 0 {
			t.Errorf("hook body length = %d, want empty", r.ContentLength)
		}
		calls.Add(1)
	}))
	defer srv.Close()

	trigger := New(srv.URL, zap.NewNop())
	if !trigger.Enabled() {
		t.Fatal("Enabled() = false with configured URL")
	}

	trigger.Fire()
	waitForCalls(t, &calls, 1)

	trigger.Fire()
	waitForCalls(t, &calls, 2)
}

func TestFire_NoURL(t *testing.T) {
	trigger := New("", zap.NewNop())
	if trigger.Enabled() {
		t.Fatal("Enabled() = true with empty URL")
	}
	// Must not panic or block.
	trigger.Fire()
}

func TestFire_HookDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	trigger := New(srv.URL, zap.NewNop())
	// Failure is logged, not surfaced.
	trigger.Fire()
	time.Sleep(50 * time.Millisecond)
}
