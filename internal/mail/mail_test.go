package mail

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---------------------------------------------------------------------------
// Mock Mailgun
// ---------------------------------------------------------------------------

type capturedRequest struct {
	path   string
	user   string
	key    string
	fields map[string]string
}

// mailgunServer records every request and answers with status.
func mailgunServer(t *testing.T, status int) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("mailgunServer: parse form: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		user, key, _ := r.BasicAuth()
		c := capturedRequest{path: r.URL.Path, user: user, key: key, fields: map[string]string{}}
		for k, v := range r.MultipartForm.Value {
			c.fields[k] = v[0]
		}
		mu.Lock()
		reqs = append(reqs, c)
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"message":"Queued. Thank you."}`)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func TestService_SendVerificationEmail(t *testing.T) {
	srv, reqs := mailgunServer(t, http.StatusOK)
	client := NewClient("mg.example.com", "key-123", "").WithBaseURL(srv.URL)
	svc := NewService(client, discardLogger())

	if !svc.SendVerificationEmail(context.Background(), "bs@email.com", "code-1") {
		t.Fatal("expected delivery to succeed")
	}
	if len(*reqs) != 1 {
		t.Fatalf("requests = %d, want 1", len(*reqs))
	}
	got := (*reqs)[0]
	if got.path != "/mg.example.com/messages" {
		t.Errorf("path = %q", got.path)
	}
	if got.user != "api" || got.key != "key-123" {
		t.Errorf("basic auth = %q:%q", got.user, got.key)
	}
	want := map[string]string{
		"from":       "Eats <mailgun@mg.example.com>",
		"to":         "bs@email.com",
		"subject":    "Verify Your Email",
		"template":   "confirm_mail",
		"v:code":     "code-1",
		"v:username": "bs@email.com",
	}
	for k, v := range want {
		if got.fields[k] != v {
			t.Errorf("field %s = %q, want %q", k, got.fields[k], v)
		}
	}
}

func TestService_SendEmail_FailureIsFalse(t *testing.T) {
	srv, _ := mailgunServer(t, http.StatusUnauthorized)
	svc := NewService(NewClient("d", "k", "").WithBaseURL(srv.URL), discardLogger())

	if svc.SendEmail(context.Background(), "s", "t", "a@b.c", nil) {
		t.Fatal("expected false on non-2xx")
	}
}

func TestService_SendEmail_UnreachableIsFalse(t *testing.T) {
	svc := NewService(NewClient("d", "k", "").WithBaseURL("http://127.0.0.1:1"), discardLogger())
	if svc.SendEmail(context.Background(), "s", "t", "a@b.c", nil) {
		t.Fatal("expected false when the endpoint is unreachable")
	}
}

// ---------------------------------------------------------------------------
// Dispatcher
// ---------------------------------------------------------------------------

type recordingSender struct {
	mu    sync.Mutex
	sent  []verification
	block chan struct{}
	ok    bool
}

func (s *recordingSender) SendVerificationEmail(_ context.Context, email, code string) bool {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, verification{email: email, code: code})
	return s.ok
}

func TestDispatcher_DeliversQueuedOnClose(t *testing.T) {
	sender := &recordingSender{ok: true}
	d := NewDispatcher(sender, discardLogger(), 8, 2)

	d.NotifyVerification("a@b.c", "1")
	d.NotifyVerification("c@d.e", "2")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent = %d, want 2", len(sender.sent))
	}

	// After Close messages are dropped, not panicking on a closed channel.
	d.NotifyVerification("late@b.c", "3")
	if len(sender.sent) != 2 {
		t.Fatalf("late message delivered: %+v", sender.sent)
	}
}

func TestDispatcher_NeverBlocksWhenFull(t *testing.T) {
	sender := &recordingSender{block: make(chan struct{}), ok: false}
	d := NewDispatcher(sender, discardLogger(), 1, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.NotifyVerification("a@b.c", "x")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyVerification blocked on a full queue")
	}

	close(sender.block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if n := len(sender.sent); n < 1 || n > 2 {
		t.Fatalf("sent = %d, want 1 or 2", n)
	}
}

func TestLogSender_CodeOnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	info := NewLogSender(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	if !info.SendVerificationEmail(context.Background(), "bs@email.com", "secret-code") {
		t.Fatal("expected true")
	}
	if strings.Contains(buf.String(), "secret-code") {
		t.Errorf("code written at info level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "bs@email.com") {
		t.Errorf("expected the skipped recipient to be logged: %s", buf.String())
	}

	buf.Reset()
	debug := NewLogSender(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	debug.SendVerificationEmail(context.Background(), "bs@email.com", "secret-code")
	if !strings.Contains(buf.String(), "secret-code") {
		t.Errorf("expected the code at debug level: %s", buf.String())
	}
}
