package models

import (
	"strings"
	"time"
)

// AccountType represents the kind of account a user holds
type AccountType string

// Account types
const (
	AccountTypePlatform AccountType = "platform"
	AccountTypeBusiness AccountType = "business"
	AccountTypePersonal AccountType = "personal"
)

// User is the primary identity record.
type User struct {
	Base

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Country  string `json:"country" gorm:"size:2"`
	Currency string `json:"currency" gorm:"default:NGN"`

	Email string `json:"email" gorm:"uniqueIndex;not null"`
	Phone string `json:"phone" gorm:"uniqueIndex;not null"`

	// Password holds the bcrypt hash, never returned to clients.
	Password string `json:"-"`

	IsSuspended     bool `json:"is_suspended"`
	IsEmailVerified bool `json:"is_email_verified"`
	IsPhoneVerified bool `json:"is_phone_verified"`

	RequiresPasswordReset bool `json:"-"`

	Is2FAEnabled bool   `json:"is_2fa_enabled" gorm:"column:is_2fa_enabled"`
	OTPSecret    string `json:"-"`
	OTPProvider  string `json:"otp_provider" gorm:"default:default"`

	Gender      string     `json:"gender,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Website     string     `json:"website,omitempty"`
	Photo       string     `json:"photo,omitempty"`

	LastLoggedIn *time.Time `json:"last_logged_in,omitempty"`

	Roles    StringList `json:"roles" gorm:"type:text"`
	Features StringList `json:"features" gorm:"type:text"`

	AccountType AccountType `json:"account_type" gorm:"default:personal"`
}

// Name returns the user's display name.
func (u *User) Name() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasAnyRole reports whether the user holds at least one of the given roles.
// An empty required set always passes.
func (u *User) HasAnyRole(roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if u.Roles.Contains(role) {
			return true
		}
	}
	return false
}
