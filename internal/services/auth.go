// Package services holds the business operations behind the custom route
// actions, keeping handlers thin.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/auth"
	"github.com/emotu/micro-cloud/internal/db/models"
	"github.com/emotu/micro-cloud/internal/db/repos"
	"github.com/emotu/micro-cloud/internal/logger"
	"github.com/emotu/micro-cloud/internal/types"
)

// Auth statuses returned in auth responses.
const (
	StatusSuccess  = "success"
	StatusNeedsOTP = "needs_otp"
)

// Auth provides signup, login and password reset operations.
type Auth struct {
	users  *repos.UserRepository
	codec  *auth.TokenCodec
	issuer string
}

// NewAuthService creates a new auth service instance.
func NewAuthService(users *repos.UserRepository, codec *auth.TokenCodec, issuer string) *Auth {
	return &Auth{users: users, codec: codec, issuer: issuer}
}

// Signup registers a new user account. Email and phone must be unused, and
// the password is stored hashed.
func (s *Auth) Signup(ctx context.Context, req *types.SignupRequest) (*types.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.Validation("-", "user with email address or phone number already exists")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	accountType := models.AccountType(req.AccountType)
	if accountType == "" {
		accountType = models.AccountTypePersonal
	}

	user := &models.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Country:     req.Country,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    hashed,
		AccountType: accountType,
	}
	if secret, err := auth.GenerateOTPSecret(s.issuer, user.Email); err == nil {
		user.OTPSecret = secret
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.response(user, StatusSuccess, ""), nil
}

// Login authenticates a username and password. Accounts with 2FA enabled
// get no token until a valid one-time code accompanies the credentials; the
// response status flags the pending step.
func (s *Auth) Login(ctx context.Context, req *types.LoginRequest) (*types.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, errs.Validation("username", fmt.Sprintf("`%s` does not exist", req.Username))
		}
		return nil, err
	}

	if user.RequiresPasswordReset {
		return nil, errs.Validation("username", fmt.Sprintf("request password reset `%s`", req.Username))
	}
	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, errs.Validation("username", fmt.Sprintf("invalid password for user with username `%s`", req.Username))
	}

	if user.Is2FAEnabled && (req.OTP == "" || !auth.ValidateOTP(req.OTP, user.OTPSecret)) {
		if req.OTP == "" && user.OTPProvider != "authenticator" {
			if otp, err := auth.GenerateOTP(user.OTPSecret); err == nil {
				// TODO: deliver through the notification channel once one exists.
				logger.Debugf("login otp generated for %s: %s", user.Email, otp)
			}
		}
		return s.response(user, StatusNeedsOTP, ""), nil
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLoggedIn = &now
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.response(user, StatusSuccess, token), nil
}

// RequestPasswordReset issues a one-time reset code for the account behind
// the email address. The response is the same whether delivery happens or
// not.
func (s *Auth) RequestPasswordReset(ctx context.Context, req *types.PasswordResetRequest) (*types.StatusResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, errs.Validation("email", fmt.Sprintf("user with email `%s` does not exist", req.Email))
		}
		return nil, err
	}

	if user.OTPSecret == "" {
		secret, err := auth.GenerateOTPSecret(s.issuer, user.Email)
		if err != nil {
			return nil, err
		}
		user.OTPSecret = secret
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	otp, err := auth.GenerateResetOTP(user.OTPSecret)
	if err != nil {
		return nil, err
	}
	// TODO: deliver through the notification channel once one exists.
	logger.Debugf("password reset otp for %s: %s", user.Email, otp)

	return &types.StatusResponse{
		Status: StatusSuccess,
		Message: "A password reset link has been sent to your email address. " +
			"Please click on the link to reset your password. Thank you!",
	}, nil
}

// ResetPassword completes a reset, verifying the one-time code before
// replacing the password and signing the user in.
func (s *Auth) ResetPassword(ctx context.Context, req *types.PasswordReset) (*types.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, req.Value)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, errs.Validation("username", fmt.Sprintf("user with email `%s` does not exist", req.Value))
		}
		return nil, err
	}

	if !auth.ValidateResetOTP(req.Code, user.OTPSecret) {
		return nil, errs.Validation("code", "invalid otp")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed
	user.RequiresPasswordReset = false
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return s.response(user, StatusSuccess, token), nil
}

func (s *Auth) response(user *models.User, status, token string) *types.AuthResponse {
	return &types.AuthResponse{
		Status:       status,
		ID:           user.ID,
		Token:        token,
		Email:        user.Email,
		Phone:        user.Phone,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Country:      user.Country,
		AccountType:  string(user.AccountType),
		Is2FAEnabled: user.Is2FAEnabled,
	}
}
