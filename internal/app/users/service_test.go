package users

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"eats-backend/internal/models"
	"eats-backend/internal/storage"
	"eats-backend/internal/storage/memory"
)

// ---------------------------------------------------------------------------
// Test doubles
// ---------------------------------------------------------------------------

type fakeTokens struct {
	calls []int
	err   error
}

func (f *fakeTokens) Sign(id int) (string, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return "", f.err
	}
	return "signed-token", nil
}

type sentCode struct {
	email string
	code  string
}

type fakeNotifier struct {
	sent []sentCode
}

func (f *fakeNotifier) NotifyVerification(email, code string) {
	f.sent = append(f.sent, sentCode{email: email, code: code})
}

type fixture struct {
	svc      *Service
	store    *memory.Store
	tokens   *fakeTokens
	notifier *fakeNotifier
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		store:    memory.New(),
		tokens:   &fakeTokens{},
		notifier: &fakeNotifier{},
	}
	f.svc = NewService(f.store, f.tokens, f.notifier, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func (f fixture) signup(t *testing.T, email, password string) *models.User {
	t.Helper()
	out := f.svc.CreateAccount(context.Background(), CreateAccountInput{
		Email: email, Password: password, Role: models.RoleClient,
	})
	if !out.OK {
		t.Fatalf("CreateAccount(%s): %+v", email, out)
	}
	u, err := f.store.Users().FindByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	return u
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// CreateAccount
// ---------------------------------------------------------------------------

func TestCreateAccount_CreatesUserVerificationAndNotifies(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "bs@email.com", "bs.password")

	if u.Verified {
		t.Error("new account must start unverified")
	}
	if u.Password == "bs.password" {
		t.Error("password stored in plain text")
	}
	if f.store.CountVerifications() != 1 {
		t.Fatalf("verifications = %d, want 1", f.store.CountVerifications())
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].email != "bs@email.com" {
		t.Fatalf("notifications = %+v", f.notifier.sent)
	}
	if _, err := f.store.Verifications().FindByCode(context.Background(), f.notifier.sent[0].code); err != nil {
		t.Fatalf("notified code is not stored: %v", err)
	}
}

func TestCreateAccount_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "bs@email.com", "pw")

	out := f.svc.CreateAccount(context.Background(), CreateAccountInput{Email: "bs@email.com", Password: "other"})
	if out.OK || out.Error != errUserExists {
		t.Fatalf("got %+v", out)
	}
	if len(f.notifier.sent) != 1 {
		t.Errorf("duplicate signup must not notify, sent=%d", len(f.notifier.sent))
	}
}

func TestCreateAccount_StoreFailures(t *testing.T) {
	boom := errors.New("db down")
	for _, op := range []string{"Users.FindByEmail", "Users.Create", "Verifications.Create"} {
		t.Run(op, func(t *testing.T) {
			f := newFixture(t)
			f.store.FailOn(op, boom)

			out := f.svc.CreateAccount(context.Background(), CreateAccountInput{Email: "a@b.c", Password: "pw"})
			if out.OK || out.Error != errCreateAccount {
				t.Fatalf("got %+v", out)
			}
			if len(f.notifier.sent) != 0 {
				t.Error("failed signup must not notify")
			}
			f.store.FailOn(op, nil)
			if _, err := f.store.Users().FindByEmail(context.Background(), "a@b.c"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("user must be rolled back, got %v", err)
			}
		})
	}
}

func TestCreateAccount_RaceConflictMapsToDuplicate(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("Users.Create", storage.ErrConflict)

	out := f.svc.CreateAccount(context.Background(), CreateAccountInput{Email: "a@b.c", Password: "pw"})
	if out.OK || out.Error != errUserExists {
		t.Fatalf("got %+v", out)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "bs@email.com", "bs.password")

	cases := []struct {
		name      string
		in        LoginInput
		wantOK    bool
		wantError string
		wantSigns int
	}{
		{"unknown email", LoginInput{"nobody@email.com", "bs.password"}, false, errUserNotFound, 0},
		{"unknown email wrong password", LoginInput{"nobody@email.com", "x"}, false, errUserNotFound, 0},
		{"wrong password", LoginInput{"bs@email.com", "nope"}, false, errWrongPassword, 0},
		{"success", LoginInput{"bs@email.com", "bs.password"}, true, "", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f.tokens.calls = nil
			out := f.svc.Login(context.Background(), tc.in)
			if out.OK != tc.wantOK || out.Error != tc.wantError {
				t.Fatalf("got %+v", out)
			}
			if len(f.tokens.calls) != tc.wantSigns {
				t.Fatalf("Sign calls = %v", f.tokens.calls)
			}
			if tc.wantOK {
				if out.Token != "signed-token" || f.tokens.calls[0] != u.ID {
					t.Fatalf("token=%q calls=%v", out.Token, f.tokens.calls)
				}
			} else if out.Token != "" {
				t.Fatalf("failed login returned a token")
			}
		})
	}
}

func TestLogin_SignerErrorHidden(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "a@b.c", "pw")
	f.tokens.err = errors.New("key missing")

	out := f.svc.Login(context.Background(), LoginInput{"a@b.c", "pw"})
	if out.OK || out.Error != errLogin || out.Token != "" {
		t.Fatalf("got %+v", out)
	}
}

// ---------------------------------------------------------------------------
// FindByID
// ---------------------------------------------------------------------------

func TestFindByID(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "a@b.c", "pw")

	out := f.svc.FindByID(context.Background(), u.ID)
	if !out.OK || out.User == nil || out.User.Email != "a@b.c" {
		t.Fatalf("got %+v", out)
	}

	missing := f.svc.FindByID(context.Background(), 999)
	if missing.OK || missing.Error != errProfileNotFound || missing.User != nil {
		t.Fatalf("got %+v", missing)
	}

	f.store.FailOn("Users.FindByID", errors.New("db down"))
	failed := f.svc.FindByID(context.Background(), u.ID)
	if failed.OK || failed.Error != errProfileNotFound {
		t.Fatalf("got %+v", failed)
	}
}

// ---------------------------------------------------------------------------
// EditProfile
// ---------------------------------------------------------------------------

func TestEditProfile_PasswordOnlyKeepsVerification(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "a@b.c", "old")
	u.Verified = true
	if err := f.store.Users().Save(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	before := f.store.CountVerifications()
	f.notifier.sent = nil

	out := f.svc.EditProfile(context.Background(), u.ID, EditProfileInput{Password: ptr("new")})
	if !out.OK {
		t.Fatalf("got %+v", out)
	}

	got, _ := f.store.Users().FindByID(context.Background(), u.ID)
	if !got.Verified {
		t.Error("password change must not reset verified")
	}
	if f.store.CountVerifications() != before {
		t.Error("password change must not create a verification")
	}
	if len(f.notifier.sent) != 0 {
		t.Error("password change must not notify")
	}
	if ok, _ := got.CheckPassword("new"); !ok {
		t.Error("new password not stored")
	}
}

func TestEditProfile_EmailChangeResetsVerification(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "a@b.c", "pw")
	u.Verified = true
	if err := f.store.Users().Save(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	f.notifier.sent = nil

	out := f.svc.EditProfile(context.Background(), u.ID, EditProfileInput{Email: ptr("new@b.c")})
	if !out.OK {
		t.Fatalf("got %+v", out)
	}

	got, _ := f.store.Users().FindByID(context.Background(), u.ID)
	if got.Email != "new@b.c" || got.Verified {
		t.Fatalf("user = %+v", got)
	}
	if f.store.CountVerifications() != 1 {
		t.Fatalf("verifications = %d, want exactly 1", f.store.CountVerifications())
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].email != "new@b.c" {
		t.Fatalf("notifications = %+v", f.notifier.sent)
	}
	v, err := f.store.Verifications().FindByCode(context.Background(), f.notifier.sent[0].code)
	if err != nil || v.UserID != u.ID {
		t.Fatalf("notified code does not belong to user: %v %+v", err, v)
	}
}

func TestEditProfile_SameEmailIsNotAChange(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "a@b.c", "pw")
	f.notifier.sent = nil

	out := f.svc.EditProfile(context.Background(), u.ID, EditProfileInput{Email: ptr("a@b.c")})
	if !out.OK || len(f.notifier.sent) != 0 {
		t.Fatalf("got %+v, sent=%d", out, len(f.notifier.sent))
	}
}

func TestEditProfile_EmptyEmailIsIgnored(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "bs@email.com", "bs.password")
	if out := f.svc.VerifyEmail(context.Background(), f.notifier.sent[0].code); !out.OK {
		t.Fatalf("VerifyEmail: %+v", out)
	}
	f.notifier.sent = nil

	out := f.svc.EditProfile(context.Background(), u.ID, EditProfileInput{Email: ptr("")})
	if !out.OK {
		t.Fatalf("got %+v", out)
	}
	got, err := f.store.Users().FindByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Email != "bs@email.com" {
		t.Errorf("email = %q, want unchanged", got.Email)
	}
	if !got.Verified {
		t.Error("empty email must not reset verification")
	}
	if f.store.CountVerifications() != 0 {
		t.Errorf("verifications = %d, want 0", f.store.CountVerifications())
	}
	if len(f.notifier.sent) != 0 {
		t.Errorf("notifications = %+v, want none", f.notifier.sent)
	}
	if ok, _ := got.CheckPassword("bs.password"); !ok {
		t.Error("password must be unchanged")
	}
}

func TestEditProfile_EmailTaken(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "taken@b.c", "pw")
	u := f.signup(t, "a@b.c", "pw")
	f.notifier.sent = nil

	out := f.svc.EditProfile(context.Background(), u.ID, EditProfileInput{Email: ptr("taken@b.c")})
	if out.OK || out.Error != errUserExists {
		t.Fatalf("got %+v", out)
	}
	if len(f.notifier.sent) != 0 {
		t.Error("failed edit must not notify")
	}
}

func TestEditProfile_Failures(t *testing.T) {
	f := newFixture(t)
	out := f.svc.EditProfile(context.Background(), 404, EditProfileInput{Password: ptr("x")})
	if out.OK || out.Error != errEditProfile {
		t.Fatalf("missing user: %+v", out)
	}

	u := f.signup(t, "a@b.c", "pw")
	f.store.FailOn("Verifications.Create", errors.New("boom"))
	out = f.svc.EditProfile(context.Background(), u.ID, EditProfileInput{Email: ptr("z@b.c")})
	if out.OK || out.Error != errEditProfile {
		t.Fatalf("store failure: %+v", out)
	}
	got, _ := f.store.Users().FindByID(context.Background(), u.ID)
	if got.Email != "a@b.c" {
		t.Errorf("email change must roll back, got %q", got.Email)
	}
}

// ---------------------------------------------------------------------------
// VerifyEmail
// ---------------------------------------------------------------------------

func TestVerifyEmail_UnknownCodeWritesNothing(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "a@b.c", "pw")
	writes := f.store.Writes()

	out := f.svc.VerifyEmail(context.Background(), "no-such-code")
	if out.OK || out.Error != errNoVerification {
		t.Fatalf("got %+v", out)
	}
	if f.store.Writes() != writes {
		t.Errorf("writes changed from %d to %d", writes, f.store.Writes())
	}
}

func TestVerifyEmail_ConsumesCode(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "a@b.c", "pw")
	code := f.notifier.sent[0].code

	out := f.svc.VerifyEmail(context.Background(), code)
	if !out.OK {
		t.Fatalf("got %+v", out)
	}
	got, _ := f.store.Users().FindByID(context.Background(), u.ID)
	if !got.Verified {
		t.Error("user not verified")
	}
	if f.store.CountVerifications() != 0 {
		t.Errorf("verifications = %d, want 0", f.store.CountVerifications())
	}
	if ok, _ := got.CheckPassword("pw"); !ok {
		t.Error("verification must not alter the password hash")
	}

	again := f.svc.VerifyEmail(context.Background(), code)
	if again.OK || again.Error != errNoVerification {
		t.Fatalf("second use: %+v", again)
	}
}

func TestVerifyEmail_StoreFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	u := f.signup(t, "a@b.c", "pw")
	f.store.FailOn("Verifications.Delete", errors.New("boom"))

	out := f.svc.VerifyEmail(context.Background(), f.notifier.sent[0].code)
	if out.OK || out.Error != errVerifyEmail {
		t.Fatalf("got %+v", out)
	}
	got, _ := f.store.Users().FindByID(context.Background(), u.ID)
	if got.Verified {
		t.Error("verified flag must roll back")
	}
}

// ---------------------------------------------------------------------------
// Panics and the full account lifecycle
// ---------------------------------------------------------------------------

type panicTokens struct{}

func (panicTokens) Sign(int) (string, error) { panic("signer exploded") }

func TestLogin_PanicBecomesEnvelope(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "a@b.c", "pw")
	f.svc.tokens = panicTokens{}

	out := f.svc.Login(context.Background(), LoginInput{"a@b.c", "pw"})
	if out.OK || out.Error != errLogin {
		t.Fatalf("got %+v", out)
	}
}

func TestAccountLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if out := f.svc.CreateAccount(ctx, CreateAccountInput{"bs@email.com", "bs.password", models.RoleClient}); !out.OK {
		t.Fatalf("signup: %+v", out)
	}
	if out := f.svc.CreateAccount(ctx, CreateAccountInput{"bs@email.com", "bs.password", models.RoleClient}); out.Error != errUserExists {
		t.Fatalf("duplicate signup: %+v", out)
	}
	if out := f.svc.Login(ctx, LoginInput{"bs@email.com", "wrong"}); out.Error != errWrongPassword {
		t.Fatalf("wrong password: %+v", out)
	}
	login := f.svc.Login(ctx, LoginInput{"bs@email.com", "bs.password"})
	if !login.OK || login.Token == "" {
		t.Fatalf("login: %+v", login)
	}

	if out := f.svc.VerifyEmail(ctx, f.notifier.sent[0].code); !out.OK {
		t.Fatalf("verify: %+v", out)
	}
	u, _ := f.store.Users().FindByEmail(ctx, "bs@email.com")
	if !u.Verified {
		t.Fatal("expected verified")
	}

	if out := f.svc.EditProfile(ctx, u.ID, EditProfileInput{Email: ptr("bs.new@email.com")}); !out.OK {
		t.Fatalf("edit: %+v", out)
	}
	profile := f.svc.FindByID(ctx, u.ID)
	if !profile.OK || profile.User.Email != "bs.new@email.com" || profile.User.Verified {
		t.Fatalf("profile: %+v", profile)
	}
	if out := f.svc.VerifyEmail(ctx, f.notifier.sent[1].code); !out.OK {
		t.Fatalf("re-verify: %+v", out)
	}
}
