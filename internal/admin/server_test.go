package admin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
)

func TestHandler_Health(t *testing.T) {
	h := Handler(map[string]HealthCheck{
		"db": func(context.Context) error { return nil },
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"db":"ok"`) {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body)
	}

	h = Handler(map[string]HealthCheck{
		"db": func(context.Context) error { return errors.New("connection refused") },
	})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable || !strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body)
	}
}

func TestHandler_Metrics(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("status=%d", rec.Code)
	}
}

func TestCheckEnabled(t *testing.T) {
	t.Setenv("PPROF_TRACE", "yes")
	t.Setenv("PPROF_HEAP", "no")
	if !checkEnabled("trace", false) {
		t.Error("PPROF_TRACE=yes should enable")
	}
	if checkEnabled("heap", true) {
		t.Error("PPROF_HEAP=no should disable")
	}
	if !checkEnabled("allocs", true) {
		t.Error("unset should fall back to the default")
	}
}

func TestEnableProfiling(t *testing.T) {
	prev := runtime.SetMutexProfileFraction(-1)
	t.Cleanup(func() {
		runtime.SetMutexProfileFraction(prev)
		runtime.SetBlockProfileRate(0)
	})

	t.Setenv("PPROF_BLOCK", "no")
	t.Setenv("PPROF_MUTEX", "yes")
	runtime.SetMutexProfileFraction(0)

	block, mutex := enableProfiling()
	if block {
		t.Error("PPROF_BLOCK=no must leave block sampling off")
	}
	if !mutex {
		t.Error("mutex sampling should be enabled")
	}
	if got := runtime.SetMutexProfileFraction(-1); got != 1 {
		t.Errorf("mutex profile fraction = %d, want 1", got)
	}
}
