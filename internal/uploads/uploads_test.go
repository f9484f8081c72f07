package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type mockPutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (m *mockPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	m.in = in
	m.body, _ = io.ReadAll(in.Body)
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.WriteString(part, content)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func newHandler(p *mockPutter, publicURL string) *Handler {
	h := NewHandler(p, Config{Bucket: "eats", PublicURL: publicURL}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return h
}

func TestHandler_Upload(t *testing.T) {
	p := &mockPutter{}
	rec := httptest.NewRecorder()
	newHandler(p, "").ServeHTTP(rec, uploadRequest(t, "file", "../pizza.png", "png-bytes"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if *p.in.Bucket != "eats" || p.in.ACL != types.ObjectCannedACLPublicRead || string(p.body) != "png-bytes" {
		t.Fatalf("put input = %+v body=%q", p.in, p.body)
	}
	key := *p.in.Key
	if !strings.HasPrefix(key, "1700000000000-") || !strings.HasSuffix(key, "-pizza.png") {
		t.Fatalf("key = %q", key)
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.URL != "https://eats.s3.amazonaws.com/"+key {
		t.Fatalf("url = %q", resp.URL)
	}
}

func TestHandler_PublicURL(t *testing.T) {
	p := &mockPutter{}
	rec := httptest.NewRecorder()
	newHandler(p, "https://cdn.example.com/").ServeHTTP(rec, uploadRequest(t, "file", "a.jpg", "x"))

	if !strings.Contains(rec.Body.String(), `"https://cdn.example.com/`+*p.in.Key+`"`) {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestHandler_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(&mockPutter{}, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newHandler(&mockPutter{}, "").ServeHTTP(rec, uploadRequest(t, "other", "a.jpg", "x"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newHandler(&mockPutter{err: errors.New("denied")}, "").ServeHTTP(rec, uploadRequest(t, "file", "a.jpg", "x"))
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "denied") {
		t.Errorf("put failure status = %d body=%s", rec.Code, rec.Body)
	}
}
