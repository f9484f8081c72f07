package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFail_ErrorPresentIffNotOK(t *testing.T) {
	ok := Success()
	if !ok.OK || ok.Error != "" {
		t.Fatalf("success envelope: got %+v", ok)
	}

	for _, out := range []Output{
		NotFound("a"), Unauthorized("b"), Conflict("c"), CredentialMismatch("d"),
	} {
		if out.OK {
			t.Errorf("failure envelope reported ok: %+v", out)
		}
		if out.Error == "" {
			t.Errorf("failure envelope without error: %+v", out)
		}
	}
}

func TestUnexpected_HidesUnderlyingError(t *testing.T) {
	out := Unexpected(context.Background(), discardLogger(), "op", errors.New("pq: connection refused"), "Could not do it.")
	if out.OK {
		t.Fatal("expected failure")
	}
	if out.Error != "Could not do it." {
		t.Errorf("error: want fixed message, got %q", out.Error)
	}
	if out.Kind != KindUnexpected {
		t.Errorf("kind: want %q, got %q", KindUnexpected, out.Kind)
	}
}

func TestRecover_ConvertsPanic(t *testing.T) {
	run := func() (out Output) {
		defer Recover(context.Background(), discardLogger(), "op", &out, "Boom.")
		panic("collaborator exploded")
	}

	out := run()
	if out.OK || out.Error != "Boom." {
		t.Fatalf("want recovered failure, got %+v", out)
	}
}

func TestRecover_NoPanicKeepsOutput(t *testing.T) {
	run := func() (out Output) {
		defer Recover(context.Background(), discardLogger(), "op", &out, "Boom.")
		return Success()
	}

	if out := run(); !out.OK {
		t.Fatalf("want success, got %+v", out)
	}
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{0, 25, 0},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{7, 3, 3},
		{9, 3, 3},
	}
	for _, c := range cases {
		if got := TotalPages(c.total, c.size); got != c.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", c.total, c.size, got, c.want)
		}
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(1, 25); got != 0 {
		t.Errorf("page 1: want 0, got %d", got)
	}
	if got := Offset(3, 3); got != 6 {
		t.Errorf("page 3: want 6, got %d", got)
	}
	if got := Offset(0, 25); got != 0 {
		t.Errorf("page 0 should behave as page 1, got %d", got)
	}
}
