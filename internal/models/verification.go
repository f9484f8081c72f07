package models

import "github.com/google/uuid"

// Verification is a one-time email confirmation code. A user has at most one
// outstanding code.
type Verification struct {
	CoreModel
	Code   string `gorm:"size:64;not null;uniqueIndex" json:"code"`
	UserID int    `gorm:"not null;uniqueIndex" json:"-"`
	User   *User  `json:"user,omitempty"`
}

func NewVerification(user *User) *Verification {
	return &Verification{
		Code:   uuid.NewString(),
		UserID: user.ID,
		User:   user,
	}
}
