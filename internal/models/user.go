package models

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient  Role = "Client"
	RoleOwner   Role = "Owner"
	RoleCourier Role = "Courier"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleOwner, RoleCourier:
		return true
	}
	return false
}

type User struct {
	CoreModel
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"size:20;not null" json:"role"`
	Verified bool   `gorm:"not null;default:false" json:"verified"`

	// plainPassword is hashed into Password right before the row is written.
	plainPassword string
}

// SetPassword replaces the password. The hash is computed at persistence
// time by HashPassword.
func (u *User) SetPassword(plain string) {
	u.plainPassword = plain
}

// HashPassword hashes a pending plaintext password into Password. It is a
// no-op when no new password was set.
func (u *User) HashPassword() error {
	if u.plainPassword == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = string(hash)
	u.plainPassword = ""
	return nil
}

// BeforeSave runs on both create and update.
func (u *User) BeforeSave(_ *gorm.DB) error {
	return u.HashPassword()
}

// CheckPassword reports whether plain matches the stored hash. A mismatch is
// not an error.
func (u *User) CheckPassword(plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("compare password: %w", err)
	}
	return true, nil
}
