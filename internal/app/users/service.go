// Package users implements account signup, login, profile editing and the
// email verification lifecycle.
package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"eats-backend/internal/app/core"
	"eats-backend/internal/metrics"
	"eats-backend/internal/models"
	"eats-backend/internal/storage"
)

const (
	errUserExists      = "There is a user with that email already."
	errCreateAccount   = "Couldn't create account."
	errUserNotFound    = "User not found"
	errWrongPassword   = "Wrong Password"
	errLogin           = "Can't log user in."
	errProfileNotFound = "User Not Found"
	errEditProfile     = "Could not update profile."
	errNoVerification  = "Verification not found"
	errVerifyEmail     = "Could not verify email."
)

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Sign(id int) (string, error)
}

// Notifier delivers verification codes. Implementations must not block.
type Notifier interface {
	NotifyVerification(email, code string)
}

type Service struct {
	store    storage.Manager
	tokens   TokenIssuer
	notifier Notifier
	log      *slog.Logger
}

func NewService(store storage.Manager, tokens TokenIssuer, notifier Notifier, log *slog.Logger) *Service {
	return &Service{store: store, tokens: tokens, notifier: notifier, log: log}
}

type CreateAccountInput struct {
	Email    string
	Password string
	Role     models.Role
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	core.Output
	Token string
}

type UserProfileOutput struct {
	core.Output
	User *models.User
}

// EditProfileInput fields left nil are not changed.
type EditProfileInput struct {
	Email    *string
	Password *string
}

func (s *Service) CreateAccount(ctx context.Context, in CreateAccountInput) (out core.Output) {
	defer core.Track("createAccount", &out)
	defer core.Recover(ctx, s.log, "createAccount", &out, errCreateAccount)

	_, err := s.store.Users().FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return core.Conflict(errUserExists)
	case !errors.Is(err, storage.ErrNotFound):
		return core.Unexpected(ctx, s.log, "createAccount", err, errCreateAccount)
	}

	user := &models.User{Email: in.Email, Role: in.Role}
	user.SetPassword(in.Password)

	var v *models.Verification
	err = s.store.Transaction(ctx, func(tx storage.Manager) error {
		if err := tx.Users().Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		v = models.NewVerification(user)
		if err := tx.Verifications().Create(ctx, v); err != nil {
			return fmt.Errorf("create verification: %w", err)
		}
		return nil
	})
	if errors.Is(err, storage.ErrConflict) {
		return core.Conflict(errUserExists)
	}
	if err != nil {
		return core.Unexpected(ctx, s.log, "createAccount", err, errCreateAccount)
	}

	s.notifier.NotifyVerification(user.Email, v.Code)
	s.log.InfoContext(ctx, "account created", "user_id", user.ID, "role", user.Role)
	return core.Success()
}

// Login checks existence, then the password, and only then issues a token.
func (s *Service) Login(ctx context.Context, in LoginInput) (out LoginOutput) {
	defer core.Track("login", &out.Output)
	defer core.Recover(ctx, s.log, "login", &out.Output, errLogin)

	user, err := s.store.Users().FindByEmail(ctx, in.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return LoginOutput{Output: core.NotFound(errUserNotFound)}
	}
	if err != nil {
		return LoginOutput{Output: core.Unexpected(ctx, s.log, "login", err, errLogin)}
	}

	ok, err := user.CheckPassword(in.Password)
	if err != nil {
		return LoginOutput{Output: core.Unexpected(ctx, s.log, "login", err, errLogin)}
	}
	if !ok {
		return LoginOutput{Output: core.CredentialMismatch(errWrongPassword)}
	}

	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return LoginOutput{Output: core.Unexpected(ctx, s.log, "login", err, errLogin)}
	}
	metrics.TokensIssued.Add(1)
	return LoginOutput{Output: core.Success(), Token: token}
}

func (s *Service) FindByID(ctx context.Context, id int) (out UserProfileOutput) {
	defer core.Track("userProfile", &out.Output)
	defer core.Recover(ctx, s.log, "userProfile", &out.Output, errProfileNotFound)

	user, err := s.store.Users().FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WarnContext(ctx, "user lookup failed", "user_id", id, "error", err)
		}
		return UserProfileOutput{Output: core.NotFound(errProfileNotFound)}
	}
	return UserProfileOutput{Output: core.Success(), User: user}
}

func (s *Service) EditProfile(ctx context.Context, userID int, in EditProfileInput) (out core.Output) {
	defer core.Track("editProfile", &out)
	defer core.Recover(ctx, s.log, "editProfile", &out, errEditProfile)

	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		return core.Unexpected(ctx, s.log, "editProfile", err, errEditProfile)
	}

	// An empty email counts as not supplied.
	emailChanged := in.Email != nil && *in.Email != "" && *in.Email != user.Email
	if emailChanged {
		user.Email = *in.Email
		user.Verified = false
	}
	if in.Password != nil {
		user.SetPassword(*in.Password)
	}

	var v *models.Verification
	err = s.store.Transaction(ctx, func(tx storage.Manager) error {
		if err := tx.Users().Save(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if !emailChanged {
			return nil
		}
		if err := tx.Verifications().DeleteByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("delete verifications: %w", err)
		}
		v = models.NewVerification(user)
		if err := tx.Verifications().Create(ctx, v); err != nil {
			return fmt.Errorf("create verification: %w", err)
		}
		return nil
	})
	if errors.Is(err, storage.ErrConflict) {
		return core.Conflict(errUserExists)
	}
	if err != nil {
		return core.Unexpected(ctx, s.log, "editProfile", err, errEditProfile)
	}

	if emailChanged {
		s.notifier.NotifyVerification(user.Email, v.Code)
	}
	return core.Success()
}

// VerifyEmail consumes a verification code and marks its owner verified.
func (s *Service) VerifyEmail(ctx context.Context, code string) (out core.Output) {
	defer core.Track("verifyEmail", &out)
	defer core.Recover(ctx, s.log, "verifyEmail", &out, errVerifyEmail)

	v, err := s.store.Verifications().FindByCode(ctx, code)
	if errors.Is(err, storage.ErrNotFound) {
		return core.NotFound(errNoVerification)
	}
	if err != nil {
		return core.Unexpected(ctx, s.log, "verifyEmail", err, errVerifyEmail)
	}
	if v.User == nil {
		return core.Unexpected(ctx, s.log, "verifyEmail", fmt.Errorf("verification %d has no user", v.ID), errVerifyEmail)
	}

	err = s.store.Transaction(ctx, func(tx storage.Manager) error {
		v.User.Verified = true
		if err := tx.Users().Save(ctx, v.User); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if err := tx.Verifications().Delete(ctx, v.ID); err != nil {
			return fmt.Errorf("delete verification: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Unexpected(ctx, s.log, "verifyEmail", err, errVerifyEmail)
	}
	return core.Success()
}
