package types

import (
	"strings"

	"github.com/emotu/micro-cloud/internal/api/errs"
)

// SignupRequest registers a new user account.
type SignupRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Country        string `json:"country"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verify_password"`
	AccountType    string `json:"account_type"`
	ReferralCode   string `json:"referral_code"`
}

// Validate checks required fields and the password confirmation.
func (r *SignupRequest) Validate() error {
	switch {
	case r.FirstName == "":
		return errs.Validation("first_name", "first_name is required")
	case r.LastName == "":
		return errs.Validation("last_name", "last_name is required")
	case r.Email == "":
		return errs.Validation("email", "email is required")
	case !strings.Contains(r.Email, "@"):
		return errs.Validation("email", "email address is not valid")
	case r.Phone == "":
		return errs.Validation("phone", "phone is required")
	case len(r.Password) < 8:
		return errs.Validation("password", "password must be at least 8 characters")
	case r.Password != r.VerifyPassword:
		return errs.Validation("verify_password", "verify_password does not match password")
	}
	return nil
}

// LoginRequest authenticates with a username, which may be an email address
// or phone number. OTP is required when the account has 2FA enabled.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTP      string `json:"otp"`
}

// Validate checks required fields.
func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return errs.Validation("username", "username is required")
	}
	if r.Password == "" {
		return errs.Validation("password", "password is required")
	}
	return nil
}

// PasswordResetRequest starts a password reset flow for an email address.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// Validate checks required fields.
func (r *PasswordResetRequest) Validate() error {
	if r.Email == "" {
		return errs.Validation("email", "email is required")
	}
	return nil
}

// PasswordReset completes a reset with the one-time code sent to the user.
type PasswordReset struct {
	Code           string `json:"code"`
	Value          string `json:"value"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verify_password"`
}

// Validate checks required fields and the password confirmation.
func (r *PasswordReset) Validate() error {
	switch {
	case r.Value == "":
		return errs.Validation("value", "value is required")
	case r.Code == "":
		return errs.Validation("code", "code is required")
	case len(r.Password) < 8:
		return errs.Validation("password", "password must be at least 8 characters")
	case r.Password != r.VerifyPassword:
		return errs.Validation("verify_password", "the passwords must match, try again")
	}
	return nil
}

// AuthResponse is returned by signup, login and password reset completion.
type AuthResponse struct {
	Status       string `json:"status"`
	ID           string `json:"id"`
	Token        string `json:"token,omitempty"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Country      string `json:"country,omitempty"`
	AccountType  string `json:"account_type,omitempty"`
	Is2FAEnabled bool   `json:"is_2fa_enabled"`
}

// ResetKeysRequest selects which credential keyspaces to regenerate.
type ResetKeysRequest struct {
	TestMode bool `json:"test_mode"`
	LiveMode bool `json:"live_mode"`
}

// Validate requires at least one keyspace.
func (r *ResetKeysRequest) Validate() error {
	if !r.TestMode && !r.LiveMode {
		return errs.Validation("test_mode", "select at least one of test_mode or live_mode")
	}
	return nil
}
